package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gpsfeed/internal/config"
	"gpsfeed/internal/gps"
	"gpsfeed/internal/pps"
	"gpsfeed/internal/replay"
	"gpsfeed/internal/sim"
	"gpsfeed/internal/udp"
	"gpsfeed/internal/web"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./dev.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("gpsfeed starting source=%s", cfg.GPS.Source)

	gpsSvc := gps.New(gps.Config{Enable: true, Device: cfg.GPS.Device, Baud: cfg.GPS.Baud})
	defer gpsSvc.Close()

	switch cfg.GPS.Source {
	case "replay":
		feed, err := replay.Open(cfg.GPS.Replay.Path, cfg.GPS.Replay.Rate, cfg.GPS.Replay.Loop)
		if err != nil {
			log.Fatalf("replay open failed: %v", err)
		}
		if err := gpsSvc.StartFeed(ctx, feed, "replay"); err != nil {
			log.Fatalf("gps start failed: %v", err)
		}
	case "sim":
		feed := sim.NewFeed(sim.Config{
			CenterLatDeg: cfg.GPS.Sim.CenterLatDeg,
			CenterLonDeg: cfg.GPS.Sim.CenterLonDeg,
			RadiusNm:     cfg.GPS.Sim.RadiusNm,
			Period:       cfg.GPS.Sim.Period,
			GroundKt:     cfg.GPS.Sim.GroundKt,
		})
		if err := gpsSvc.StartFeed(ctx, feed, "sim"); err != nil {
			log.Fatalf("gps start failed: %v", err)
		}
	default:
		if err := gpsSvc.Start(ctx); err != nil {
			log.Fatalf("gps start failed: %v", err)
		}
	}

	var ppsFn func() pps.Snapshot
	if cfg.PPS.Enable {
		mon := pps.New(cfg.PPS.Pin)
		if err := mon.Start(); err != nil {
			// The fix feed is still useful without timing pulses.
			log.Printf("pps unavailable: %v", err)
		} else {
			defer mon.Close()
			ppsFn = mon.Snapshot
			log.Printf("pps enabled pin=%d", cfg.PPS.Pin)
		}
	}

	if cfg.UDP.Enable {
		broadcaster, err := udp.NewBroadcaster(cfg.UDP.Dest)
		if err != nil {
			log.Fatalf("udp broadcaster init failed: %v", err)
		}
		defer broadcaster.Close()
		log.Printf("udp dest=%s interval=%s", cfg.UDP.Dest, cfg.UDP.Interval)
		go func() {
			err := broadcaster.Run(ctx, cfg.UDP.Interval, func() any { return gpsSvc.Snapshot() })
			if err != nil && ctx.Err() == nil {
				log.Printf("udp broadcaster stopped: %v", err)
				cancel()
			}
		}()
	}

	if cfg.Web.Enable {
		status := web.NewStatus(cfg.GPS.Source, gpsSvc.Snapshot, ppsFn)
		log.Printf("web listening on %s", cfg.Web.Listen)
		go func() {
			if err := web.Serve(ctx, cfg.Web.Listen, status); err != nil && ctx.Err() == nil {
				log.Printf("web server stopped: %v", err)
				cancel()
			}
		}()
	}

	<-ctx.Done()
	log.Printf("gpsfeed stopping")
}
