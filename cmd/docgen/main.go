// Command docgen renders one document from local JSON, without the
// server. Useful for trying templates:
//
//	docgen -template contestation-facture -profile profile.json -task task.json -out out.pdf
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"famorg/internal/docgen"
	"famorg/internal/docgen/template"
	"famorg/internal/entity"
)

type fileStore struct {
	profile *entity.Profile
	task    *entity.Task
}

func (s *fileStore) GetProfile(context.Context, uuid.UUID) (*entity.Profile, error) {
	return s.profile, nil
}

func (s *fileStore) GetTask(context.Context, uuid.UUID) (*entity.Task, error) {
	return s.task, nil
}

type fileAttachment struct {
	text string
}

func (a *fileAttachment) Text(context.Context, string) (string, error) {
	return a.text, nil
}

func main() {
	var (
		templateID = flag.String("template", "", "template id (see -list)")
		profile    = flag.String("profile", "", "path to profile JSON")
		task       = flag.String("task", "", "path to task JSON (optional)")
		attachment = flag.String("attachment", "", "path to attachment text file (optional)")
		out        = flag.String("out", "out.pdf", "output PDF path")
		preview    = flag.Bool("preview", false, "print resolved content instead of writing a PDF")
		list       = flag.Bool("list", false, "list available templates")
		overrides  overrideFlags
	)
	flag.Var(&overrides, "set", "variable override name=value (repeatable; empty value blanks the field)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if *list {
		for _, t := range template.All() {
			fmt.Printf("%-24s %s\n", t.ID, t.Title)
		}
		return
	}
	if *templateID == "" || *profile == "" {
		flag.Usage()
		os.Exit(2)
	}

	store := &fileStore{}
	if err := readJSON(*profile, &store.profile); err != nil {
		fatal(logger, "read profile", err)
	}
	var taskID *uuid.UUID
	if *task != "" {
		if err := readJSON(*task, &store.task); err != nil {
			fatal(logger, "read task", err)
		}
		if store.task.ID == uuid.Nil {
			store.task.ID = uuid.New()
		}
		taskID = &store.task.ID
	}

	var attachments docgen.AttachmentReader
	if *attachment != "" {
		data, err := os.ReadFile(*attachment)
		if err != nil {
			fatal(logger, "read attachment", err)
		}
		attachments = &fileAttachment{text: string(data)}
		if store.task == nil {
			store.task = &entity.Task{ID: uuid.New(), AttachmentURL: *attachment}
			taskID = &store.task.ID
		} else if store.task.AttachmentURL == "" {
			store.task.AttachmentURL = *attachment
		}
	}

	svc := docgen.NewService(store, attachments, nil, logger)
	ctx := context.Background()

	if *preview {
		res, err := svc.Preview(ctx, *templateID, taskID, store.profile.ID, overrides.m)
		if err != nil {
			fatal(logger, "preview", err)
		}
		fmt.Println(res.Content)
		if len(res.Missing) > 0 {
			fmt.Fprintf(os.Stderr, "missing: %s\n", strings.Join(res.Missing, ", "))
		}
		return
	}

	res, err := svc.Generate(ctx, *templateID, taskID, store.profile.ID, overrides.m)
	if err != nil {
		fatal(logger, "generate", err)
	}
	if err := os.WriteFile(*out, res.Bytes, 0o644); err != nil {
		fatal(logger, "write pdf", err)
	}
	fmt.Printf("%s (%d page(s))\n", *out, res.Pages)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}

// overrideFlags collects repeated -set name=value flags.
type overrideFlags struct {
	m map[string]string
}

func (o *overrideFlags) String() string { return "" }

func (o *overrideFlags) Set(v string) error {
	name, value, found := strings.Cut(v, "=")
	if !found || name == "" {
		return fmt.Errorf("expected name=value, got %q", v)
	}
	if o.m == nil {
		o.m = map[string]string{}
	}
	o.m[name] = value
	return nil
}
