package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/layby/internal/auth"
	"github.com/MrJamesThe3rd/layby/internal/ledger"
	"github.com/MrJamesThe3rd/layby/internal/payment"
)

// Recorder is the slice of the ledger the importer needs.
type Recorder interface {
	RecordPayment(ctx context.Context, actor auth.Actor, params ledger.RecordPaymentParams) (*ledger.RecordResult, error)
}

type Service struct {
	recorder Recorder
}

func NewService(recorder Recorder) *Service {
	return &Service{recorder: recorder}
}

// Outcome is what happened to one sheet line.
type Outcome struct {
	Line      int
	PaymentID *uuid.UUID
	State     payment.State
	Err       error
}

type Report struct {
	Format   string
	Charset  string
	Outcomes []Outcome
	Recorded int
	Failed   int
}

// Import records every parsable line as a payment in its own ledger
// transaction. A failing line never stops the lines after it.
func (s *Service) Import(ctx context.Context, actor auth.Actor, r io.Reader) (*Report, error) {
	sheet, err := Parse(r)
	if err != nil {
		return nil, err
	}

	report := &Report{Format: sheet.Format, Charset: sheet.Charset}

	for _, row := range sheet.Rows {
		out := Outcome{Line: row.Line, Err: row.Err}

		if out.Err == nil {
			res, err := s.recorder.RecordPayment(ctx, actor, row.Payment)
			if err != nil {
				out.Err = fmt.Errorf("line %d: %w", row.Line, err)
			} else {
				out.PaymentID = &res.Payment.ID
				out.State = res.Payment.State
			}
		}

		if out.Err != nil {
			report.Failed++
		} else {
			report.Recorded++
		}

		report.Outcomes = append(report.Outcomes, out)
	}

	slog.Info("payment sheet imported",
		"format", report.Format, "charset", report.Charset,
		"recorded", report.Recorded, "failed", report.Failed, "user_id", actor.UserID)

	return report, nil
}
