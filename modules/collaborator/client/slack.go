package client

import (
	"bytes"
	"context"
	"fmt"

	"github.com/slack-go/slack"
	scrapermodel "github.com/yamada-labo/prospectline/modules/scraper/model"
	"go.uber.org/zap"
)

var statusEmoji = map[string]string{
	"pending":   ":hourglass:",
	"searching": ":mag:",
	"scraping":  ":spider_web:",
	"saving":    ":floppy_disk:",
	"completed": ":white_check_mark:",
	"failed":    ":x:",
}

// SlackReporter posts job progress, completion, and failure into a single
// channel thread. Any call failure is logged and swallowed: notification
// delivery never blocks or fails the pipeline it reports on.
type SlackReporter struct {
	api      *slack.Client
	channel  string
	threadTS string
	log      *zap.Logger
}

// NewSlackReporter builds a reporter against a single channel/thread pair.
// threadTS may be empty to post top-level messages instead of replies.
func NewSlackReporter(botToken, channel, threadTS string, log *zap.Logger) *SlackReporter {
	return &SlackReporter{
		api:      slack.New(botToken),
		channel:  channel,
		threadTS: threadTS,
		log:      log,
	}
}

func (s *SlackReporter) post(text string, blocks ...slack.Block) {
	opts := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if s.threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(s.threadTS))
	}
	if len(blocks) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(blocks...))
	}
	if _, _, err := s.api.PostMessage(s.channel, opts...); err != nil {
		if s.log != nil {
			s.log.Warn("slack post failed", zap.Error(err))
		}
	}
}

func (s *SlackReporter) OnStatus(_ context.Context, status string, progress int, message string) {
	emoji, ok := statusEmoji[status]
	if !ok {
		emoji = ":information_source:"
	}
	s.post(fmt.Sprintf("%s [%s] %s (%d%%)", emoji, status, message, progress))
}

func (s *SlackReporter) OnFinal(_ context.Context, records []*scrapermodel.EnrichedRecord, artifact []byte, artifactName string) {
	text := fmt.Sprintf("営業リスト作成完了 (%d件)", len(records))
	section := slack.NewTextBlockObject(slack.MarkdownType,
		fmt.Sprintf(":white_check_mark: *営業リスト作成完了*\n\n*取得件数:* %d件", len(records)), false, false)
	s.post(text, slack.NewSectionBlock(section, nil, nil))

	if len(artifact) > 0 {
		params := slack.UploadFileV2Parameters{
			Filename: artifactName,
			FileSize: len(artifact),
			Reader:   bytes.NewReader(artifact),
			Channel:  s.channel,
		}
		if s.threadTS != "" {
			params.ThreadTimestamp = s.threadTS
		}
		if _, err := s.api.UploadFileV2(params); err != nil && s.log != nil {
			s.log.Warn("slack file upload failed", zap.Error(err))
		}
	}
}

func (s *SlackReporter) OnError(_ context.Context, message string) {
	s.post(fmt.Sprintf(":x: *エラーが発生しました*\n```%s```", message))
}
