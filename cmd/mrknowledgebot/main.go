package main

import "log"

func main() {
	a, err := newApp()
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	if err := a.run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
