package client

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	scrapermodel "github.com/yamada-labo/prospectline/modules/scraper/model"
	"go.uber.org/zap"
)

// EmailReporter is an alternate ProgressReporter for deployments with no
// chat workspace: it sends the same three events as plain-text email.
type EmailReporter struct {
	client *resend.Client
	from   string
	to     []string
	log    *zap.Logger
}

// NewEmailReporter builds a reporter that sends through Resend.
func NewEmailReporter(apiKey, from string, to []string, log *zap.Logger) *EmailReporter {
	return &EmailReporter{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
		log:    log,
	}
}

func (e *EmailReporter) send(ctx context.Context, subject, text string) {
	_, err := e.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    e.from,
		To:      e.to,
		Subject: subject,
		Text:    text,
	})
	if err != nil && e.log != nil {
		e.log.Warn("email notification failed", zap.Error(err))
	}
}

func (e *EmailReporter) OnStatus(ctx context.Context, status string, progress int, message string) {
	e.send(ctx, fmt.Sprintf("[%s] %d%%", status, progress), message)
}

func (e *EmailReporter) OnFinal(ctx context.Context, records []*scrapermodel.EnrichedRecord, _ []byte, _ string) {
	e.send(ctx, "営業リスト作成完了", fmt.Sprintf("取得件数: %d件", len(records)))
}

func (e *EmailReporter) OnError(ctx context.Context, message string) {
	e.send(ctx, "営業リスト作成エラー", message)
}
