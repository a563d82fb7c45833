package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docchat/internal/chunker"
	"docchat/internal/config"
	"docchat/internal/domain"
	"docchat/internal/embedding"
	"docchat/internal/llm"
	"docchat/internal/retriever"
	"docchat/internal/service"
	"docchat/internal/synthesizer"
	"docchat/internal/tui"
	"docchat/internal/vectorstore/chromem"
	"docchat/internal/vectorstore/memory"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docchat/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: docchat [--config=docchat.yaml] file1.pdf [file2.pdf ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}

	// Assemble components via interfaces
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "ollama", "":
		emb = embedding.NewOllama(embedding.OllamaConfig{
			BaseURL: env.OllamaURL,
			Model:   cfg.Embedder.Model,
			Timeout: time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
		})
	case "openai":
		emb, err = embedding.NewOpenAI(embedding.OpenAIConfig{
			BaseURL:   env.OpenAIBaseURL,
			APIKey:    env.OpenAIKey,
			Model:     cfg.Embedder.Model,
			BatchSize: cfg.Embedder.BatchSize,
			Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
	case "mock":
		emb = embedding.NewMock(0)
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var st domain.VectorStore
	switch cfg.VectorStore.Type {
	case "memory", "":
		st = memory.NewStore()
	case "chromem":
		st, err = chromem.NewStore()
		if err != nil {
			log.Fatalf("chromem store init failed: %v", err)
		}
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	var gen domain.Generator
	switch cfg.LLM.Type {
	case "ollama", "":
		gen = llm.NewOllama(llm.OllamaConfig{
			BaseURL: env.OllamaURL,
			Model:   cfg.LLM.Model,
			Timeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
		})
	case "openai":
		gen, err = llm.NewOpenAI(llm.OpenAIConfig{
			BaseURL: env.OpenAIBaseURL,
			APIKey:  env.OpenAIKey,
			Model:   cfg.LLM.Model,
			Timeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai generator init failed: %v", err)
		}
	case "mock":
		gen = llm.NewMock()
	default:
		log.Fatalf("unknown llm: %s", cfg.LLM.Type)
	}

	ch, err := chunker.New(cfg.Chunker.Size, cfg.Chunker.Overlap)
	if err != nil {
		log.Fatalf("chunker init failed: %v", err)
	}
	retr := retriever.New(emb, st, cfg.Retrieval.TopK)
	synth := synthesizer.New(gen, cfg.LLM.Temperature, cfg.LLM.MaxTokens)
	svc := service.New(ch, emb, st, retr, synth, service.Options{HistoryWindow: cfg.History.Window})

	files, err := readFiles(inputs)
	if err != nil {
		log.Fatalf("read input files: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := svc.Ingest(ctx, files)
	if err != nil {
		log.Fatalf("ingest cancelled: %v", err)
	}
	banner := ingestBanner(result)
	if result.ChunksAdded == 0 && len(result.Failed()) == len(result.Files) {
		log.Fatalf("no documents could be ingested:\n%s", banner)
	}

	m := tui.New(svc, banner)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

func readFiles(paths []string) ([]domain.File, error) {
	var files []domain.File
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, err
			}
			files = append(files, domain.File{Name: filepath.Base(m), Data: data})
		}
	}
	return files, nil
}

func ingestBanner(result domain.IngestResult) string {
	var b strings.Builder
	for _, f := range result.Files {
		if f.Err != nil {
			fmt.Fprintf(&b, "✗ %s: %v\n", f.Name, f.Err)
			continue
		}
		fmt.Fprintf(&b, "✓ %s: %d chunks\n", f.Name, f.Chunks)
	}
	fmt.Fprintf(&b, "\nIndexed %d chunks total. Ask away.", result.ChunksAdded)
	return b.String()
}
