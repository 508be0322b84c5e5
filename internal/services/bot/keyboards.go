package bot

import (
	"strconv"

	tele "gopkg.in/telebot.v3"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/tables"
	"bakhtbot/internal/workflow"
)

const (
	cbKua     = "kua_button"
	cbZodiac  = "zodiac_button"
	cbQuiz    = "quiz_button"
	cbJourney = "journey_button"
	cbHelp    = "help_button"
	cbStart   = "start_button"
	cbConfirm = "confirm_join"
)

func inlineGrid(buttons []tele.InlineButton, columns int) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, (len(buttons)+columns-1)/columns)
	for len(buttons) > 0 {
		n := columns
		if n > len(buttons) {
			n = len(buttons)
		}
		rows = append(rows, buttons[:n])
		buttons = buttons[n:]
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

func dashboardKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{
			{Text: "🔢 عدد شانس", Data: cbKua},
			{Text: "🐉 نماد چینی", Data: cbZodiac},
		},
		{
			{Text: "📝 آزمون", Data: cbQuiz},
			{Text: "✈️ سفر", Data: cbJourney},
		},
		{
			{Text: "❓ راهنما", Data: cbHelp},
		},
	}}
}

func joinChannelsKeyboard(channels []string) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(channels)+1)
	for _, ch := range channels {
		rows = append(rows, []tele.InlineButton{
			{Text: "@" + ch, URL: "https://t.me/" + ch},
		})
	}
	rows = append(rows, []tele.InlineButton{{Text: textJoinConfirm, Data: cbConfirm}})
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

func decadeKeyboard(feature entities.Feature, decades []int) *tele.ReplyMarkup {
	buttons := make([]tele.InlineButton, 0, len(decades))
	for _, d := range decades {
		buttons = append(buttons, tele.InlineButton{
			Text: strconv.Itoa(d),
			Data: workflow.Token(feature, workflow.StepDecade, strconv.Itoa(d)),
		})
	}
	return inlineGrid(buttons, 2)
}

func yearKeyboard(feature entities.Feature, start, end int) *tele.ReplyMarkup {
	buttons := make([]tele.InlineButton, 0, end-start+1)
	for y := start; y <= end; y++ {
		buttons = append(buttons, tele.InlineButton{
			Text: strconv.Itoa(y),
			Data: workflow.Token(feature, workflow.StepYear, strconv.Itoa(y)),
		})
	}
	return inlineGrid(buttons, 3)
}

func monthKeyboard(feature entities.Feature) *tele.ReplyMarkup {
	buttons := make([]tele.InlineButton, 0, 12)
	for i, name := range monthNames {
		buttons = append(buttons, tele.InlineButton{
			Text: name,
			Data: workflow.Token(feature, workflow.StepMonth, strconv.Itoa(i+1)),
		})
	}
	return inlineGrid(buttons, 3)
}

func dayKeyboard(feature entities.Feature) *tele.ReplyMarkup {
	buttons := make([]tele.InlineButton, 0, 31)
	for d := 1; d <= 31; d++ {
		buttons = append(buttons, tele.InlineButton{
			Text: strconv.Itoa(d),
			Data: workflow.Token(feature, workflow.StepDay, strconv.Itoa(d)),
		})
	}
	return inlineGrid(buttons, 4)
}

func genderKeyboard(feature entities.Feature) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{
			{Text: "مرد 👨", Data: workflow.Token(feature, workflow.StepGender, string(tables.GenderMale))},
			{Text: "زن 👩", Data: workflow.Token(feature, workflow.StepGender, string(tables.GenderFemale))},
		},
	}}
}

func contactKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		ReplyKeyboard: [][]tele.ReplyButton{
			{{Text: "📱 ارسال شماره تماس", Contact: true}},
		},
	}
}
