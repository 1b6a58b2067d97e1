package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/automoto/arena-mp/assets"
	"github.com/automoto/arena-mp/server/core"
)

func main() {
	port := flag.Uint("port", 7373, "Server port")
	tickRate := flag.Int("tickrate", 20, "Server tick rate (updates per second)")
	room := flag.String("room", "", "Only accept joins for this room id (empty = accept any)")
	mapPath := flag.String("map", "", "Map file (.json or .tmx); defaults to the embedded map")
	moveSpeed := flag.Float64("movespeed", 240, "Player movement speed in units per second")
	bulletSpeed := flag.Float64("bulletspeed", 720, "Bullet speed in units per second")
	flag.Parse()

	var (
		fsys fs.FS = assets.FS()
		name       = assets.MapPath
	)
	if *mapPath != "" {
		fsys = os.DirFS(filepath.Dir(*mapPath))
		name = filepath.Base(*mapPath)
	}
	level, err := core.LoadServerLevel(fsys, name)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}

	server := core.NewServer(core.Config{
		Level:       level,
		TickRate:    *tickRate,
		RoomID:      *room,
		MoveSpeed:   *moveSpeed,
		BulletSpeed: *bulletSpeed,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
	}()

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Starting arena dev server on %s (tick rate: %d/s, room: %q)", addr, *tickRate, *room)
	if err := server.Start(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
