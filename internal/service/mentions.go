package service

import (
	"context"
	"regexp"

	"github.com/lumis/servicedesk/internal/directory"
	"github.com/lumis/servicedesk/internal/events"
)

// mentionPattern matches both rich mentions, @[Display Name](user-id),
// and bare @name tokens.
var mentionPattern = regexp.MustCompile(`@\[([^\]]+)\]\(([\w-]+)\)|@([\w.-]+)`)

// extractMentions resolves the users referenced in a comment body against
// the directory. Bare names that do not match an active user are skipped;
// duplicates are collapsed. The resolved display name rides along so
// downstream delivery does not have to look it up again.
func extractMentions(ctx context.Context, dir *directory.Directory, body string) []events.Mention {
	matches := mentionPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := map[string]bool{}
	var mentions []events.Mention
	for _, m := range matches {
		var mention events.Mention
		switch {
		case m[2] != "":
			user, err := dir.Lookup(ctx, m[2])
			if err != nil {
				continue
			}
			mention = events.Mention{UserID: user.ID, Name: user.Name}
		case m[3] != "":
			user, err := dir.ResolveName(ctx, m[3])
			if err != nil {
				continue
			}
			mention = events.Mention{UserID: user.ID, Name: user.Name}
		}
		if mention.UserID != "" && !seen[mention.UserID] {
			seen[mention.UserID] = true
			mentions = append(mentions, mention)
		}
	}
	return mentions
}
