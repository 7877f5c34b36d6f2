// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// sessions.go - saved conversation management.
//
// Command: sessions [list|show|delete]
//
// Examples:
//   genie sessions                 List saved conversations
//   genie sessions show conv_1a2b  Print a saved conversation
//   genie sessions delete conv_1a2b
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/collegegenie-tui/internal/model"
	"github.com/jeranaias/collegegenie-tui/internal/storage"
	"github.com/jeranaias/collegegenie-tui/internal/util"
)

// RunSessions handles "genie sessions".
func RunSessions(app *App, args Args) int {
	store, err := storage.NewConversationStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "opening conversation store:", err)
		return 1
	}

	switch args.Subcommand {
	case "", "list":
		return listSessions(store)

	case "show":
		if len(args.Raw) == 0 {
			fmt.Fprintln(os.Stderr, "usage: genie sessions show <id>")
			return 1
		}
		return showSession(store, args.Raw[0])

	case "delete", "rm":
		if len(args.Raw) == 0 {
			fmt.Fprintln(os.Stderr, "usage: genie sessions delete <id>")
			return 1
		}
		if err := store.Delete(args.Raw[0]); err != nil {
			fmt.Fprintln(os.Stderr, "delete:", err)
			return 1
		}
		fmt.Println("deleted", args.Raw[0])
		return 0

	default:
		fmt.Fprintf(os.Stderr, "unknown sessions subcommand %q\n", args.Subcommand)
		return 1
	}
}

func listSessions(store *storage.ConversationStore) int {
	metas, err := store.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, "listing conversations:", err)
		return 1
	}
	if len(metas) == 0 {
		fmt.Println("No saved conversations. Use /save inside chat.")
		return 0
	}

	for _, meta := range metas {
		summary := util.TruncateRunes(meta.Summary, 60)
		fmt.Printf("%-22s %s  %s (%s msgs)\n",
			meta.ID,
			meta.UpdatedAt.Format("2006-01-02 15:04"),
			summary,
			util.IntToString(meta.MessageCount))
	}
	return 0
}

func showSession(store *storage.ConversationStore, id string) int {
	conv, err := store.Load(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load:", err)
		return 1
	}

	for _, m := range conv.Messages {
		label := model.Role(m.Role).DisplayName()
		fmt.Println(label + ":")
		fmt.Println(renderMarkdownInline(m.Content))
		fmt.Println()
	}
	return 0
}
