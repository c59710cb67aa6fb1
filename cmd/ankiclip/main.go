package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/patrickprogramme/ankiclip/internal/anki"
	"github.com/patrickprogramme/ankiclip/internal/app"
	"github.com/patrickprogramme/ankiclip/internal/assets"
	"github.com/patrickprogramme/ankiclip/internal/bootstrap"
	"github.com/patrickprogramme/ankiclip/internal/config"
	"github.com/patrickprogramme/ankiclip/internal/extractor"
	"github.com/patrickprogramme/ankiclip/internal/forvo"
	"github.com/patrickprogramme/ankiclip/internal/player"
	"github.com/patrickprogramme/ankiclip/internal/ui"
)

type cliFlags struct {
	ConfigPath string
	Socket     string
}

func main() {
	flags := parseFlags()

	// déterminer exePath/binDir
	binDir := "."
	exePath, err := os.Executable()
	if err != nil {
		log.Printf("impossible de déterminer le chemin de l'executable: %v", err)
	} else {
		binDir = filepath.Dir(exePath)
		fmt.Printf("Lancement depuis: %s\n", exePath)
	}

	// emplacement config par défaut
	if flags.ConfigPath == "ankiclip.yaml" || flags.ConfigPath == "" {
		flags.ConfigPath = filepath.Join(binDir, "ankiclip.yaml")
	}

	// s'assurer que le fichier config existe, si non on le crée
	if err := bootstrap.EnsureConfigPresent(
		flags.ConfigPath,
		assets.Embedded,
		assets.DefaultConfigAsset,
	); err != nil {
		log.Printf("erreur: EnsureConfigPresent: %v", err)
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	// appliquer le flag -socket par-dessus la config
	if flags.Socket != "" {
		cfg.MPVSocket = flags.Socket
	}

	// connexion au lecteur : sans elle il n'y a rien à orchestrer
	client, err := player.Connect(cfg.MPVSocket)
	if err != nil {
		log.Fatalf("connexion mpv (%s): %v\nlancer mpv avec --input-ipc-server=%s", cfg.MPVSocket, err, cfg.MPVSocket)
	}
	defer client.Close()

	ffmpeg := extractor.New(cfg.FFmpegPath)
	ffmpeg.SnapshotWidth = cfg.SnapshotWidth
	ffmpeg.SnapshotQuality = cfg.SnapshotQuality
	ffmpeg.AudioBitrate = cfg.AudioBitrate
	ffmpeg.AudioPadding = cfg.AudioPadding
	if err := ffmpeg.CheckBinary(); err != nil {
		// les notes restent exportables sans média
		log.Printf("warning: %v (extraction média désactivée ?)", err)
	}

	svc := anki.NewClient(&anki.HTTPTransport{
		URL:     cfg.AnkiConnectURL,
		Timeout: 15 * time.Second,
	})

	pron := app.NewForvoPronouncer(forvo.New(cfg.ForvoFormatValue()), svc)

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	osd := ui.NewOSD(client)
	a := app.New(cfg, svc, client, osd, ffmpeg, pron)
	if err := a.Run(ctx, client.Events()); err != nil && ctx.Err() == nil {
		log.Fatalf("app run: %v", err)
	}
}

func parseFlags() *cliFlags {
	f := &cliFlags{}
	flag.StringVar(&f.ConfigPath, "config", "ankiclip.yaml", "path to config file")
	flag.StringVar(&f.Socket, "socket", "", "chemin de la socket IPC mpv (prioritaire sur la config)")
	flag.Parse()
	return f
}
