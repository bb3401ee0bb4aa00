package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/susu3304/warikan/internal/logger"
	"github.com/susu3304/warikan/internal/render"
	"github.com/susu3304/warikan/internal/split"
)

const defaultHistoryCount = 5

func HandleHistory(s *discordgo.Session, i *discordgo.InteractionCreate, svc *split.Service, f render.Formatter, log *logger.Logger) {
	count := defaultHistoryCount
	if v := getIntOption(i.ApplicationCommandData().Options, "count"); v != nil {
		count = int(*v)
	}

	reply := HistoryReply(context.Background(), svc, f, interactionUserID(i), count)
	if err := respondEphemeral(s, i, reply); err != nil {
		log.Warn("failed to respond", "command", "history", "error", err)
	}
}

// HistoryReply lists the owner's recent settlements, newest first.
func HistoryReply(ctx context.Context, svc *split.Service, f render.Formatter, ownerID string, count int) string {
	records, err := svc.History(ctx, ownerID, count)
	if errors.Is(err, split.ErrHistoryDisabled) {
		return "履歴機能は有効になっていません。"
	}
	if err != nil {
		return "履歴の取得に失敗しました。"
	}
	if len(records) == 0 {
		return "まだ割り勘の記録はありません。"
	}

	var b strings.Builder
	b.WriteString("**割り勘の履歴**\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "- %s 合計 %s / %d人 / 送金 %d件 (`%s`)\n",
			rec.CreatedAt.Format("2006-01-02 15:04"),
			f.Amount(rec.Total),
			len(rec.Result.Balances),
			len(rec.Result.Transactions),
			rec.ID,
		)
		for _, line := range f.Plan(&rec.Result) {
			fmt.Fprintf(&b, "  - %s\n", line)
		}
	}
	return b.String()
}
