package render

import "github.com/susu3304/warikan/internal/settlement"

// Messages is the wording a Formatter uses. Entries are fmt templates; the
// comment on each field lists its arguments.
type Messages struct {
	EqualShare    string // amount
	BalancesTitle string
	PlanTitle     string
	NoTransfers   string

	Owes     string // name, amount
	GetsBack string // name, amount
	Settled  string // name

	Payment    string // amount, receiver
	PaymentSep string
	MustPay    string // payer, joined payments

	TooFew         string // minimum, count
	BadParticipant string // 1-based index, " (name)" or "", reason
	Reasons        map[string]string
	BadTotal       string
	Mismatch       string // sum, total, signed difference
	Failure        string
}

const NoTransfersMessage = "Everyone has already paid exactly their share! No transactions needed."

var English = &Messages{
	EqualShare:    "Equal share per person: %s",
	BalancesTitle: "Balances:",
	PlanTitle:     "Settlement plan:",
	NoTransfers:   NoTransfersMessage,

	Owes:     "%s owes %s",
	GetsBack: "%s gets back %s",
	Settled:  "%s is settled (paid exactly the equal share)",

	Payment:    "%[1]s to %[2]s",
	PaymentSep: ", and ",
	MustPay:    "%s must pay: %s.",

	TooFew:         "Input error: at least %d participants are needed (got %d).",
	BadParticipant: "Input error: participant #%d%s: %s.",
	BadTotal:       "Input error: the total amount must be greater than zero.",
	Mismatch:       "Input error: total contributions (%s) do not match the total amount spent (%s); difference %s. Please adjust the contributions so they sum up to the total.",
	Failure:        "Something went wrong while computing the settlement.",
}

// Japanese is used by the Discord bot.
var Japanese = &Messages{
	EqualShare:    "1人あたりの負担額: %s",
	BalancesTitle: "各自の収支:",
	PlanTitle:     "精算方法:",
	NoTransfers:   "全員がちょうど負担額を支払っています。精算は不要です。",

	Owes:     "%s は %s 支払う必要があります",
	GetsBack: "%s は %s 受け取ります",
	Settled:  "%s は精算済みです (負担額ちょうど)",

	Payment:    "%[2]s に %[1]s",
	PaymentSep: "、",
	MustPay:    "%s の支払い: %s。",

	TooFew:         "入力エラー: 参加者は%d人以上必要です (現在%d人)。",
	BadParticipant: "入力エラー: %d番目の参加者%s: %s。",
	Reasons: map[string]string{
		settlement.ReasonEmptyName:            "名前が空です",
		settlement.ReasonNegativeContribution: "支払額が負の値です",
	},
	BadTotal: "入力エラー: 合計金額は0より大きくしてください。",
	Mismatch: "入力エラー: 支払額の合計 (%s) が合計金額 (%s) と一致しません。差額 %s。合計が一致するように支払額を調整してください。",
	Failure:  "精算の計算中にエラーが発生しました。",
}

func (m *Messages) reason(r string) string {
	if t, ok := m.Reasons[r]; ok {
		return t
	}
	return r
}
