// Command coverletter запрашивает письмо у запущенного сервера и сохраняет его в PDF.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coverletter/internal/coverletter"
	"coverletter/internal/pdfexport"
	"coverletter/internal/transport"
	"coverletter/internal/ui"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:8080", "base URL of the cover letter API")
	name := flag.String("name", "", "full name")
	skills := flag.String("skills", "", "skills")
	jobTitle := flag.String("job-title", "", "job title")
	company := flag.String("company", "", "company name")
	out := flag.String("out", pdfexport.Filename, "PDF output path; empty to skip export")
	timeout := flag.Duration("timeout", 0, "request timeout, 0 for none")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *server, *timeout, *out, coverletter.Request{
		Name:        *name,
		Skills:      *skills,
		JobTitle:    *jobTitle,
		CompanyName: *company,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, server string, timeout time.Duration, out string, fields coverletter.Request) error {
	client := ui.NewAPIClient(server, transport.NewHTTPClient(timeout))
	m := ui.NewModel(client, pdfexport.DefaultOptions())
	if err := m.SetFields(fields); err != nil {
		return err
	}

	if err := m.Submit(ctx); err != nil {
		if errors.Is(err, ui.ErrMissingFields) {
			return errors.New("--name, --skills, --job-title and --company are required")
		}
		return err
	}

	letter, _ := m.State().Letter()
	fmt.Println(letter)

	if out == "" {
		return nil
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := m.ExportPDF(f); err != nil {
		f.Close()
		return fmt.Errorf("export pdf: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", out)
	return nil
}
