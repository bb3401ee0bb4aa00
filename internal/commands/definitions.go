package commands

import "github.com/bwmarrin/discordgo"

func GetCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "split",
			Description: "割り勘を計算して、誰が誰にいくら払うかを表示します",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "total",
					Description: "支払いの合計金額",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "contributions",
					Description: "各自の支払額 (例: @A=3000 @B=0 C=1500)",
					Required:    true,
				},
			},
		},
		{
			Name:        "history",
			Description: "自分が計算した割り勘の履歴を表示します",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "表示する件数 (既定: 5)",
					Required:    false,
					MinValue:    floatPtr(1),
					MaxValue:    25,
				},
			},
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
