package core

import (
	"strings"
	"unicode"

	"lingobot/internal/lang"
)

// CommandKind describes which bot command a message invokes.
type CommandKind int

const (
	// CommandNone marks messages that are not a recognized command.
	CommandNone CommandKind = iota
	// CommandHelp displays the command overview.
	CommandHelp
	// CommandTranslate carries a raw translate payload.
	CommandTranslate
)

// Command is a parsed command invocation. Payload is everything after the
// command token, untrimmed.
type Command struct {
	Kind    CommandKind
	Payload string
}

// HelpReply is the static /help response.
var HelpReply = "These commands are supported with languages:\n" +
	"/help - display this text.\n" +
	"/translate - translate to specified language e.g. `/translate en Hallo Welt!`. " +
	"You can also reply to messages. Translations from any language " +
	"into the following languages are supported: " + lang.Codes() + "\n" +
	"/t - shortcut for /translate."

// ParseCommand extracts a recognized command from raw message text.
// Commands may carry an @mention suffix; when botName is set a mention of a
// different bot is ignored, which matters in group chats.
func ParseCommand(text, botName string) Command {
	if !strings.HasPrefix(text, "/") {
		return Command{}
	}

	token := text
	payload := ""
	if idx := strings.IndexFunc(text, unicode.IsSpace); idx >= 0 {
		token = text[:idx]
		payload = text[idx+1:]
	}

	name := strings.TrimPrefix(token, "/")
	if at := strings.Index(name, "@"); at >= 0 {
		mention := name[at+1:]
		name = name[:at]
		if botName != "" && !strings.EqualFold(mention, botName) {
			return Command{}
		}
	}

	switch strings.ToLower(name) {
	case "help":
		return Command{Kind: CommandHelp}
	case "translate", "t":
		return Command{Kind: CommandTranslate, Payload: payload}
	}
	return Command{}
}
