// Package ai asks an OpenAI-compatible model for a short financial
// summary. Every failure path resolves to a fixed user-facing message;
// callers never see an error.
package ai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"netkas/internal/core"
)

const (
	// Fixed fallback messages shown instead of a model response.
	MsgDisabled       = "Fitur AI dinonaktifkan karena API Key tidak ditemukan."
	MsgNoTransactions = "Belum ada transaksi untuk dianalisis. Silakan tambahkan beberapa transaksi terlebih dahulu."
	MsgError          = "Maaf, terjadi kesalahan saat mencoba menganalisis keuangan Anda. Silakan coba lagi nanti."

	callTimeout = 60 * time.Second
)

// Summarizer produces the dashboard's AI summary.
type Summarizer struct {
	client *openai.Client
	model  string
}

// NewSummarizer returns a disabled summarizer when apiKey is empty.
func NewSummarizer(apiKey, model string) *Summarizer {
	s := &Summarizer{model: model}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

// Enabled reports whether an API key was configured.
func (s *Summarizer) Enabled() bool { return s.client != nil }

// Summarize returns a 2-3 sentence summary plus one actionable
// suggestion for the given transactions, or a fixed fallback message.
func (s *Summarizer) Summarize(ctx context.Context, txs []core.Transaction) string {
	if s.client == nil {
		return MsgDisabled
	}
	if len(txs) == 0 {
		return MsgNoTransactions
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(txs)},
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "Financial summary request failed", "error", err)
		return MsgError
	}
	if len(resp.Choices) == 0 {
		slog.WarnContext(ctx, "Financial summary response had no choices")
		return MsgError
	}
	return resp.Choices[0].Message.Content
}

func buildPrompt(txs []core.Transaction) string {
	var lines []string
	for _, t := range txs {
		kind := "Pengeluaran"
		if t.Type == core.Income {
			kind = "Pemasukan"
		}
		lines = append(lines, "- "+kind+": "+t.Description+" - "+
			core.FormatRupiah(t.Amount.Cents)+" pada "+core.FormatDayID(t.Date))
	}

	return `Anda adalah seorang penasihat keuangan pribadi yang ramah dan cerdas. Berdasarkan daftar transaksi berikut, berikan ringkasan singkat (2-3 kalimat) mengenai kebiasaan pengeluaran pengguna dan satu saran praktis yang dapat segera diterapkan untuk meningkatkan kesehatan finansial mereka. Gunakan format Markdown.

Data Transaksi:
` + strings.Join(lines, "\n") + `

Format Jawaban:
**Ringkasan Keuangan:**
[Tulis ringkasan di sini]

**Saran Praktis:**
[Tulis satu saran di sini]`
}
