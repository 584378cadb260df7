package cli

import (
	"fmt"
	"strings"

	pb "github.com/dmitrijs2005/swappool/internal/proto"
)

func formatContent(c *pb.Content) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s", c.ID, c.MediaKind, c.MediaURL)
	if c.OwnerDisplayName != "" {
		fmt.Fprintf(&b, " by %s", c.OwnerDisplayName)
	}
	if c.Caption != "" {
		fmt.Fprintf(&b, "\n  %q", c.Caption)
	}
	fmt.Fprintf(&b, "\n  views %d, likes %d, comments %d", c.ViewCount, c.ReactionCount, c.CommentCount)
	if c.IsNSFW {
		b.WriteString(", nsfw")
	}
	if c.SaveForever {
		b.WriteString(", saved forever")
	}
	return b.String()
}

func printContent(c *pb.Content) {
	printlnFn(formatContent(c))
}

func printView(v *pb.View) {
	if v.Exhausted || v.Content == nil {
		msg := v.Message
		if msg == "" {
			msg = "nothing to show"
		}
		printlnFn(msg)
		return
	}
	printContent(v.Content)
	if v.FallbackUsed {
		printlnFn("  (shown again, nothing new for you)")
	}
}
