package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"cineangle/internal/export"
	"cineangle/internal/generation"
	"cineangle/internal/history"
	"cineangle/internal/infra"
	"cineangle/internal/providers/genai"
	imgprov "cineangle/internal/providers/image"
	"cineangle/internal/session"
	"cineangle/internal/storage"
	"cineangle/pkg/datauri"
	ziputil "cineangle/pkg/zip"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "generate":
		err = runGenerate(ctx, cfg, logger, os.Args[2:])
	case "history":
		err = runHistory(ctx, cfg, logger, os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error().Err(err).Msg(os.Args[1] + " failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  cineangle generate -in photo.jpg [-out dir] [-zip]
  cineangle history [-delete id | -restore id -out dir]
  cineangle export -in image.jpg -out file [-brightness n] [-contrast n] [-format jpeg|png] [-scale s]`)
}

func newService(ctx context.Context, cfg *infra.Config, logger infra.Logger) (*session.Service, error) {
	var editor imgprov.Editor
	switch cfg.ImageProvider {
	case "openai":
		oa, err := imgprov.NewOpenAIEditor(imgprov.OpenAIOptions{APIKey: cfg.OpenAIAPIKey, BaseURL: cfg.OpenAIBaseURL})
		if err != nil {
			return nil, err
		}
		editor = oa
	default:
		client, err := genai.NewClient(genai.Options{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			Logger:  &logger,
		})
		if err != nil {
			return nil, err
		}
		editor = imgprov.NewGeminiEditor(client)
	}

	kv, err := newKV(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	store := history.NewStore(kv, cfg.HistoryKey, logger)
	orch := generation.NewOrchestrator(editor, logger)
	return session.NewService(orch, store, cfg, logger), nil
}

func newKV(ctx context.Context, cfg *infra.Config, logger infra.Logger) (history.KV, error) {
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store := storage.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		logger.Debug().Msg("history backed by postgres")
		return store, nil
	}
	return storage.NewFileStore(cfg.DataDir)
}

func runGenerate(ctx context.Context, cfg *infra.Config, logger infra.Logger, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	inPath := fs.String("in", "", "source photograph")
	outDir := fs.String("out", ".", "output directory")
	asZip := fs.Bool("zip", false, "bundle results into a zip archive")
	_ = fs.Parse(args)

	if *inPath == "" {
		return fmt.Errorf("generate: -in is required")
	}
	data, err := os.ReadFile(*inPath)
	if err != nil {
		return fmt.Errorf("generate: read source: %w", err)
	}
	src := imgprov.SourceImage{Data: data, MIMEType: http.DetectContentType(data)}
	if !strings.HasPrefix(src.MIMEType, "image/") {
		return fmt.Errorf("generate: %s is not an image (%s)", *inPath, src.MIMEType)
	}

	svc, err := newService(ctx, cfg, logger)
	if err != nil {
		return err
	}

	slots, err := svc.Generate(ctx, src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("generate: ensure output dir: %w", err)
	}

	var assets []ziputil.Asset
	for _, slot := range slots {
		if slot.Src == "" {
			logger.Warn().Str("angle", slot.Angle).Msg("no image for angle")
			continue
		}
		mime, raw, err := datauri.Decode(slot.Src)
		if err != nil {
			return fmt.Errorf("generate: slot %q: %w", slot.Angle, err)
		}
		name := export.Filename(slot.Angle, extForMIME(mime))
		assets = append(assets, ziputil.Asset{Filename: name, Data: raw})
		if !*asZip {
			path := filepath.Join(*outDir, name)
			if err := os.WriteFile(path, raw, 0o644); err != nil {
				return fmt.Errorf("generate: write %s: %w", path, err)
			}
			fmt.Println(path)
		}
	}

	if *asZip {
		archive, err := ziputil.Archive(assets)
		if err != nil {
			return err
		}
		path := filepath.Join(*outDir, "cinematic-angles.zip")
		if err := os.WriteFile(path, archive, 0o644); err != nil {
			return fmt.Errorf("generate: write %s: %w", path, err)
		}
		fmt.Println(path)
	}
	return nil
}

func runHistory(ctx context.Context, cfg *infra.Config, logger infra.Logger, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	deleteID := fs.String("delete", "", "remove the record with this id")
	restoreID := fs.String("restore", "", "write the record's thumbnails to -out")
	outDir := fs.String("out", ".", "output directory for -restore")
	_ = fs.Parse(args)

	kv, err := newKV(ctx, cfg, logger)
	if err != nil {
		return err
	}
	store := history.NewStore(kv, cfg.HistoryKey, logger)

	switch {
	case *deleteID != "":
		store.Remove(*deleteID)
		return nil
	case *restoreID != "":
		return restoreRecord(store, *restoreID, *outDir)
	default:
		for _, rec := range store.Load() {
			populated := 0
			for _, slot := range rec.Results {
				if slot.Src != "" {
					populated++
				}
			}
			fmt.Printf("%s\t%s\t%d/%d angles\n", rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"), populated, len(rec.Results))
		}
		return nil
	}
}

func restoreRecord(store *history.Store, id, outDir string) error {
	var rec *history.Record
	for _, r := range store.Load() {
		if r.ID == id {
			rec = &r
			break
		}
	}
	if rec == nil {
		return fmt.Errorf("history: record %q not found", id)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("history: ensure output dir: %w", err)
	}

	writeThumb := func(name, uri string) error {
		if uri == "" {
			return nil
		}
		_, raw, err := datauri.Decode(uri)
		if err != nil {
			return fmt.Errorf("history: %s: %w", name, err)
		}
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	if err := writeThumb("source.jpeg", rec.SourceThumb); err != nil {
		return err
	}
	for _, slot := range rec.Results {
		if err := writeThumb(export.Filename(slot.Angle, "jpeg"), slot.Src); err != nil {
			return err
		}
	}
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	inPath := fs.String("in", "", "image to export")
	outPath := fs.String("out", "", "output file")
	brightness := fs.Int("brightness", 100, "brightness percent (50-150)")
	contrast := fs.Int("contrast", 100, "contrast percent (50-150)")
	format := fs.String("format", "jpeg", "output format: jpeg or png")
	scale := fs.Float64("scale", 1, "output scale: 1, 0.5 or 0.25")
	quality := fs.Int("quality", 92, "jpeg quality (1-100)")
	_ = fs.Parse(args)

	if *inPath == "" || *outPath == "" {
		return fmt.Errorf("export: -in and -out are required")
	}
	data, err := os.ReadFile(*inPath)
	if err != nil {
		return fmt.Errorf("export: read source: %w", err)
	}

	out, err := export.Render(datauri.Encode(http.DetectContentType(data), data), export.Options{
		Brightness: *brightness,
		Contrast:   *contrast,
		Scale:      *scale,
		Format:     *format,
		Quality:    *quality,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", *outPath, err)
	}
	fmt.Println(*outPath)
	return nil
}

func extForMIME(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpeg"
	case "image/gif":
		return "gif"
	default:
		return "img"
	}
}
