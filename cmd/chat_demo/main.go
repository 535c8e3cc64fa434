package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"tripkit/internal/ai"
	"tripkit/internal/modules/dialogue"
	"tripkit/internal/modules/imagegen"
	"tripkit/internal/modules/session"
)

func main() {
	ctx := context.Background()

	var engine session.Engine = session.NewLocalEngine(dialogue.NewEngine(dialogue.NewStaticCatalog()))
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		provider, err := ai.NewGeminiProvider(ctx, apiKey)
		if err != nil {
			log.Fatalf("Failed to initialize AI provider: %v", err)
		}
		defer provider.Close()
		engine = session.NewLLMEngine(provider)
		fmt.Println("(using gemini dialogue engine)")
	}

	svc := session.NewService(session.NewMemoryStore(session.DefaultTTL), engine, nil, nil)
	sess, err := svc.Start(ctx)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	fmt.Printf("Bot: %s\n", sess.Messages[0].Content)

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !in.Scan() {
			return
		}
		msg := strings.TrimSpace(in.Text())
		if msg == "" {
			continue
		}
		if msg == "/quit" {
			return
		}

		r, err := svc.Send(ctx, session.SendCommand{SessionID: sess.ID, Message: msg})
		if err != nil {
			log.Fatalf("Error sending message: %v", err)
		}
		fmt.Printf("Bot: %s\n", r.Reply)
		fmt.Printf("  [%s -> %s]\n", r.CurrentStep, r.NextStep)

		if r.IsComplete {
			req := imagegen.RequestFromProfile(r.Session.CollectedData, "")
			fmt.Printf("Destination: %s\n", req.Destination)
			fmt.Printf("Concept: %s (%s)\n", req.Concept, req.FilmType)
			fmt.Printf("Film: %s\n", req.FilmStock)
			return
		}
	}
}
