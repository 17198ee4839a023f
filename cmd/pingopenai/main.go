package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	svc "PredicaAI/pkg/services"
)

// Small connectivity check: sends one prompt through the configured
// chat model and prints the reply. Run it after changing API keys.
func main() {
	prompt := flag.String("prompt", "Dame una lista de tres frutas.", "prompt to send")
	timeout := flag.Duration("timeout", 60*time.Second, "request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ai := svc.NewOpenAIService()
	reply, err := ai.ChatCompletion(ctx, *prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chat completion failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(reply)
}
