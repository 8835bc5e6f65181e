package bot

import (
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
)

func formatReplyText(text string, a ...any) string {
	return fmt.Sprintf(strings.TrimSpace(dedent.Dedent(text)), a...)
}

// parseCommand splits "/cmd arg1 arg2" into the command and its args.
// The @botname suffix Telegram appends in groups is stripped.
func parseCommand(s string) (string, []string) {
	parts := strings.Split(s, " ")
	command, _, _ := strings.Cut(parts[0], "@")
	return command, parts[1:]
}
