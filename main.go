package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/thermal.view/internal/api"
	"github.com/banshee-data/thermal.view/internal/config"
	"github.com/banshee-data/thermal.view/internal/thermal"
	"github.com/banshee-data/thermal.view/internal/transport"
	"github.com/banshee-data/thermal.view/internal/version"
)

var (
	devMode      = flag.Bool("dev", false, "Run against a synthetic sample stream instead of real hardware")
	listen       = flag.String("listen", ":8090", "Listen address for the status HTTP server")
	portPath     = flag.String("port", "", "Serial device path (default: scan for the imager by USB ID)")
	settingsPath = flag.String("settings", "", "Path to a JSON settings file")
	showVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("thermal.view %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	settings := thermal.DefaultSettings()
	if *settingsPath != "" {
		fileSettings, err := config.Load(*settingsPath)
		if err != nil {
			log.Fatalf("failed to load settings file: %v", err)
		}
		settings, err = fileSettings.Apply(settings)
		if err != nil {
			log.Fatalf("invalid settings file: %v", err)
		}
	}

	var opener transport.Opener
	if *devMode {
		opener = &transport.SynthOpener{
			Width:      thermal.Width,
			Height:     thermal.Height,
			FrameDelay: 100 * time.Millisecond,
		}
	} else {
		opener = transport.NewSerialOpener(*portPath)
	}

	producer := thermal.NewProducer(opener, settings)
	store := api.NewFrameStore(settings)

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("thermal.view %s (%s) starting", version.Version, version.GitSHA)

	// run the acquisition worker; it owns the serial port exclusively
	wg.Add(1)
	go func() {
		defer wg.Done()
		producer.Run(ctx)
		log.Print("producer routine terminated")
	}()

	// consume frames and status transitions on behalf of the display layer
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case m := <-producer.Messages():
				switch m := m.(type) {
				case thermal.FrameMessage:
					store.SetFrame(m.Frame)
				case thermal.StatusMessage:
					store.SetStatus(m.Status)
					log.Printf("imager %s", m.Status)
				}
			case <-ctx.Done():
				log.Print("display routine terminated")
				return
			}
		}
	}()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := http.NewServeMux()

		server := api.NewServer(store, producer)
		server.AttachAdminRoutes(mux)
		mux.Handle("/api/", http.StripPrefix("/api", server.ServeMux()))

		httpServer := &http.Server{
			Addr:    *listen,
			Handler: mux,
		}

		go func() {
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}

		log.Print("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Print("Graceful shutdown complete")
}
