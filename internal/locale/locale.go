// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package locale holds the fixed user-visible strings and their translations.
//
// Keys are the English texts. A Printer resolves them for the best matching
// supported language, falling back to English.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	NoResponse      = "Sorry, I couldn't generate a response."
	ConnectionError = "⚠️ Unable to connect. Please try again."
	ToastConnection = "Connection error"

	ConfirmTitle   = "New Conversation"
	ConfirmBody    = "Are you sure you want to start a new conversation? This cannot be undone."
	ConfirmCancel  = "Cancel"
	ConfirmConfirm = "Confirm"
	ToastCleared   = "Conversation cleared"

	ToastNothingToExport = "No conversation to export"
	ToastExported        = "Chat exported successfully"
	ToastExportFailed    = "Export failed: %v"
	ToastCopied          = "Reply copied to clipboard"
	ToastNothingToCopy   = "No reply to copy"
	ToastCopyFailed      = "Clipboard unavailable"
	ToastVoice           = "Voice input coming soon!"
	ToastAttach          = "File attachment coming soon!"
	ToastSettingsSaved   = "Settings saved"
	ToastSettingsFailed  = "Could not save settings: %v"
	ToastSettingsLoaded  = "Settings reloaded"
	ToastThemeChanged    = "Theme: %s"

	WelcomeTitle    = "Hello! I'm Gemini"
	WelcomeSubtitle = "Your intelligent AI assistant, ready to help with anything you need."
	WelcomeTry      = "Try asking:"
	Thinking        = "Gemini is thinking"
	InputHint       = "Type your message..."
	SettingsTitle   = "Settings"
)

var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.German,
}

var translations = map[language.Tag]map[string]string{
	language.Spanish: {
		NoResponse:           "Lo siento, no pude generar una respuesta.",
		ConnectionError:      "⚠️ No se pudo conectar. Inténtalo de nuevo.",
		ToastConnection:      "Error de conexión",
		ConfirmTitle:         "Nueva conversación",
		ConfirmBody:          "¿Seguro que quieres empezar una nueva conversación? No se puede deshacer.",
		ConfirmCancel:        "Cancelar",
		ConfirmConfirm:       "Confirmar",
		ToastCleared:         "Conversación borrada",
		ToastNothingToExport: "No hay conversación para exportar",
		ToastExported:        "Chat exportado correctamente",
		ToastExportFailed:    "Error al exportar: %v",
		ToastCopied:          "Respuesta copiada al portapapeles",
		ToastNothingToCopy:   "No hay respuesta para copiar",
		ToastCopyFailed:      "Portapapeles no disponible",
		ToastVoice:           "¡Entrada de voz próximamente!",
		ToastAttach:          "¡Adjuntar archivos próximamente!",
		ToastSettingsSaved:   "Ajustes guardados",
		ToastSettingsFailed:  "No se pudieron guardar los ajustes: %v",
		ToastSettingsLoaded:  "Ajustes recargados",
		ToastThemeChanged:    "Tema: %s",
		WelcomeTitle:         "¡Hola! Soy Gemini",
		WelcomeSubtitle:      "Tu asistente de IA, listo para ayudarte con lo que necesites.",
		WelcomeTry:           "Prueba a preguntar:",
		Thinking:             "Gemini está pensando",
		InputHint:            "Escribe tu mensaje...",
		SettingsTitle:        "Ajustes",
	},
	language.German: {
		NoResponse:           "Entschuldigung, ich konnte keine Antwort erzeugen.",
		ConnectionError:      "⚠️ Keine Verbindung möglich. Bitte erneut versuchen.",
		ToastConnection:      "Verbindungsfehler",
		ConfirmTitle:         "Neue Unterhaltung",
		ConfirmBody:          "Möchtest du wirklich eine neue Unterhaltung beginnen? Das kann nicht rückgängig gemacht werden.",
		ConfirmCancel:        "Abbrechen",
		ConfirmConfirm:       "Bestätigen",
		ToastCleared:         "Unterhaltung gelöscht",
		ToastNothingToExport: "Keine Unterhaltung zum Exportieren",
		ToastExported:        "Chat erfolgreich exportiert",
		ToastExportFailed:    "Export fehlgeschlagen: %v",
		ToastCopied:          "Antwort in die Zwischenablage kopiert",
		ToastNothingToCopy:   "Keine Antwort zum Kopieren",
		ToastCopyFailed:      "Zwischenablage nicht verfügbar",
		ToastVoice:           "Spracheingabe kommt bald!",
		ToastAttach:          "Dateianhänge kommen bald!",
		ToastSettingsSaved:   "Einstellungen gespeichert",
		ToastSettingsFailed:  "Einstellungen konnten nicht gespeichert werden: %v",
		ToastSettingsLoaded:  "Einstellungen neu geladen",
		ToastThemeChanged:    "Design: %s",
		WelcomeTitle:         "Hallo! Ich bin Gemini",
		WelcomeSubtitle:      "Dein intelligenter KI-Assistent, bereit für alles, was du brauchst.",
		WelcomeTry:           "Frag zum Beispiel:",
		Thinking:             "Gemini denkt nach",
		InputHint:            "Nachricht eingeben...",
		SettingsTitle:        "Einstellungen",
	},
}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(supported)
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			// SetString only fails for malformed messages; these are constants.
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Printer resolves message keys for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a printer for the best supported match of lang, which may be a
// BCP 47 tag ("de-CH") or a POSIX locale ("es_ES.UTF-8"). Empty or unknown
// values select English.
func New(lang string) *Printer {
	tag := Match(lang)
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Match returns the supported language closest to lang.
func Match(lang string) language.Tag {
	lang = normalize(lang)
	if lang == "" {
		return language.English
	}
	parsed, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(parsed)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// Detect returns the language requested by the environment.
func Detect() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return ""
}

func normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	return strings.ReplaceAll(lang, "_", "-")
}

// Tag returns the resolved language.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// T returns the translation of key, formatted with args.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
