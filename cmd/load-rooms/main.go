package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"picture-guess/internal/config"
	"picture-guess/internal/db"
	"picture-guess/internal/imagecodec"
	"picture-guess/internal/logging"
	"picture-guess/internal/store"

	"go.uber.org/zap"
)

func main() {
	filePath := flag.String("file", "rooms.csv", "path to rooms csv (room_id,answer,image_path)")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	conn, err := db.Open(cfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer func() { _ = db.Close(conn) }()
	if err := db.Migrate(conn); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	seeds, err := db.ReadRoomSeeds(*filePath)
	if err != nil {
		logger.Fatal("failed to read rooms", zap.String("file", *filePath), zap.Error(err))
	}

	rooms := store.NewRoomStore(conn, cfg.MaxRoomIDLength)
	baseDir := filepath.Dir(*filePath)
	ctx := context.Background()
	loaded := 0
	for _, seed := range seeds {
		roomLog := logger.With(zap.String("room_id", seed.RoomID))
		encoded := ""
		if seed.ImagePath != "" {
			encoded, err = encodeFile(resolvePath(baseDir, seed.ImagePath))
			if err != nil {
				roomLog.Warn("skipping room with unreadable image", zap.String("image", seed.ImagePath), zap.Error(err))
				continue
			}
		}
		if err := rooms.Save(ctx, seed.RoomID, seed.Answer, encoded); err != nil {
			roomLog.Fatal("failed to save room", zap.Error(err))
		}
		loaded++
	}

	logger.Info("rooms loaded", zap.Int("loaded", loaded), zap.Int("rows", len(seeds)))
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func encodeFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode png: %w", err)
	}
	return imagecodec.Encode(imagecodec.FromImage(img))
}
