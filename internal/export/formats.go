// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// TEXT EXPORTER
// =============================================================================

// TextExporter writes "You: ..." / "Gemini AI: ..." blocks joined by blank
// lines. Text is written raw, exactly as stored.
type TextExporter struct{}

// Export implements Exporter.
func (TextExporter) Export(conv *Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	blocks := make([]string, 0, len(conv.Turns))
	for _, t := range conv.Turns {
		blocks = append(blocks, t.Role.DisplayName()+": "+t.Text)
	}
	return []byte(strings.Join(blocks, "\n\n")), nil
}

func (TextExporter) FileExtension() string { return ".txt" }
func (TextExporter) MimeType() string      { return "text/plain" }

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes a Markdown transcript with a front matter header.
type MarkdownExporter struct{}

// Export implements Exporter.
func (MarkdownExporter) Export(conv *Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "session: %s\n", conv.ID)
	fmt.Fprintf(&sb, "date: %s\n", conv.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "turns: %d\n", len(conv.Turns))
	sb.WriteString("generator: chatline\n")
	sb.WriteString("---\n\n")
	sb.WriteString("# Conversation\n\n")

	for _, t := range conv.Turns {
		fmt.Fprintf(&sb, "### %s", t.Role.DisplayName())
		if ts := t.FormatTime(); ts != "" {
			fmt.Fprintf(&sb, " <sub>%s</sub>", ts)
		}
		sb.WriteString("\n\n")
		sb.WriteString(t.Text)
		sb.WriteString("\n\n")
	}
	return []byte(strings.TrimRight(sb.String(), "\n") + "\n"), nil
}

func (MarkdownExporter) FileExtension() string { return ".md" }
func (MarkdownExporter) MimeType() string      { return "text/markdown" }

// =============================================================================
// STRUCTURED EXPORTERS
// =============================================================================

type document struct {
	Session      string    `json:"session" yaml:"session"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	Conversation []turnDoc `json:"conversation" yaml:"conversation"`
}

type turnDoc struct {
	Role string    `json:"role" yaml:"role"`
	Text string    `json:"text" yaml:"text"`
	At   time.Time `json:"at,omitempty" yaml:"at,omitempty"`
}

func newDocument(conv *Conversation) document {
	doc := document{
		Session:      conv.ID,
		CreatedAt:    conv.CreatedAt,
		Conversation: make([]turnDoc, 0, len(conv.Turns)),
	}
	for _, t := range conv.Turns {
		doc.Conversation = append(doc.Conversation, turnDoc{Role: string(t.Role), Text: t.Text, At: t.At})
	}
	return doc
}

// JSONExporter writes the conversation as indented JSON.
type JSONExporter struct{}

// Export implements Exporter.
func (JSONExporter) Export(conv *Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	return json.MarshalIndent(newDocument(conv), "", "  ")
}

func (JSONExporter) FileExtension() string { return ".json" }
func (JSONExporter) MimeType() string      { return "application/json" }

// YAMLExporter writes the conversation as YAML.
type YAMLExporter struct{}

// Export implements Exporter.
func (YAMLExporter) Export(conv *Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	return yaml.Marshal(newDocument(conv))
}

func (YAMLExporter) FileExtension() string { return ".yaml" }
func (YAMLExporter) MimeType() string      { return "application/yaml" }
