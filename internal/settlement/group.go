package settlement

// PayerGroup collects the transfers one payer has to make.
type PayerGroup struct {
	Payer    string        `json:"payer"`
	Payments []Transaction `json:"payments"`
}

// GroupByPayer groups txs by payer. Payers appear in the order of their first
// transfer and each group keeps the original transfer order.
func GroupByPayer(txs []Transaction) []PayerGroup {
	var groups []PayerGroup
	index := make(map[string]int)
	for _, tx := range txs {
		i, ok := index[tx.Payer]
		if !ok {
			i = len(groups)
			index[tx.Payer] = i
			groups = append(groups, PayerGroup{Payer: tx.Payer})
		}
		groups[i].Payments = append(groups[i].Payments, tx)
	}
	return groups
}
