package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"github.com/susu3304/warikan/internal/logger"
	"github.com/susu3304/warikan/internal/render"
	"github.com/susu3304/warikan/internal/settlement"
	"github.com/susu3304/warikan/internal/split"
)

const splitUsage = "例: `/split total:9000 contributions:@A=9000 @B=0 @C=0`"

func HandleSplit(s *discordgo.Session, i *discordgo.InteractionCreate, svc *split.Service, f render.Formatter, log *logger.Logger) {
	opts := i.ApplicationCommandData().Options

	total := getNumberOption(opts, "total")
	text := getStringOption(opts, "contributions")
	if total == nil || text == nil {
		if err := respondEphemeral(s, i, "合計金額と支払額を指定してください。\n"+splitUsage); err != nil {
			log.Warn("failed to respond", "command", "split", "error", err)
		}
		return
	}

	reply, ok := SplitReply(context.Background(), svc, f, interactionUserID(i), decimal.NewFromFloat(*total), *text)
	var err error
	if ok {
		err = respondText(s, i, reply)
	} else {
		err = respondEphemeral(s, i, reply)
	}
	if err != nil {
		log.Warn("failed to respond", "command", "split", "error", err)
	}
}

// SplitReply computes a settlement from the command input and renders the
// reply. ok is false when the reply is an error message for the invoker.
func SplitReply(ctx context.Context, svc *split.Service, f render.Formatter, ownerID string, total decimal.Decimal, text string) (string, bool) {
	participants, err := split.ParseText(text)
	if err != nil {
		return fmt.Sprintf("入力形式が正しくありません: %v\n%s", err, splitUsage), false
	}

	rec, err := svc.Compute(ctx, split.Request{
		OwnerID:      ownerID,
		Total:        total,
		Participants: participants,
	})
	if err != nil {
		if settlement.IsInputError(err) {
			return f.Error(err), false
		}
		return "計算に失敗しました。時間をおいて再度お試しください。", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**割り勘結果** 合計 %s / %d人\n", f.Amount(rec.Total), len(rec.Result.Balances))
	b.WriteString(f.Summary(&rec.Result))
	if svc.HistoryEnabled() {
		fmt.Fprintf(&b, "\nID: `%s`", rec.ID)
	}
	return b.String(), true
}
