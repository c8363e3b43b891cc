package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docedit/internal/doctree"
	"github.com/dgallion1/docedit/internal/editor"
	"github.com/dgallion1/docedit/internal/parser"
	"github.com/dgallion1/docedit/internal/writer"
)

// Worker processes a single batch edit job: parse the file, build the
// tree, apply the op list, render the output.
type Worker struct {
	log *slog.Logger
}

func NewWorker(log *slog.Logger) *Worker {
	return &Worker{log: log}
}

// Process runs the full batch pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.fileData), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.RecordParse(len(doc.Blocks))

	root := doctree.Build(doc.Blocks)

	// Phase 2: Apply ops
	job.SetStatus(StatusEditing, "editing")
	opErrors := 0
	for i, op := range job.ops {
		if ctx.Err() != nil {
			job.AddError("cancelled")
			job.SetStatus(StatusFailed, "editing")
			return
		}
		changed, err := editor.ApplyOp(root, op)
		if err != nil {
			log.Warn("op failed", "index", i, "op", op.Op, "error", err)
			job.AddError(fmt.Sprintf("op %d (%s): %s", i, op.Op, err))
			opErrors++
			continue
		}
		job.RecordOp(changed)
	}

	// Phase 3: Render
	job.SetStatus(StatusRendering, "rendering")
	var out []byte
	switch job.OutputFormat {
	case "ooxml":
		out = []byte(writer.BodyXML(root))
	default:
		out = []byte(writer.Markdown(root, nil))
	}
	job.SetResult(out)

	if opErrors > 0 {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("batch edit complete",
		"blocks", len(doc.Blocks),
		"ops", len(job.ops),
		"op_errors", opErrors,
		"output_bytes", len(out),
	)
}
