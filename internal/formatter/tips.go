package formatter

import "GardenBot/internal/domain"

var tipEmoji = []string{"💡", "🌱", "🪴", "🌿", "🌻"}

// Tips is the static pool for the periodic short post.
var Tips = []string{
	"Поливайте грядки рано утром или вечером: днём вода быстро испаряется, а капли на листьях могут вызвать ожоги.",
	"Мульча из скошенной травы сохраняет влагу в почве и сдерживает рост сорняков.",
	"Не сажайте томаты и картофель рядом: у них общие болезни, включая фитофтору.",
	"Бархатцы по краю грядок отпугивают многих вредителей и украшают огород.",
	"Перед посевом замочите семена на несколько часов в тёплой воде, так всходы появятся быстрее.",
	"Золу можно использовать как калийное удобрение, но не вносите её вместе с навозом.",
	"Проветривайте теплицу в солнечные дни, даже весной: перегрев опаснее прохлады.",
	"Обрезку плодовых деревьев проводят до начала сокодвижения, пока почки не тронулись в рост.",
	"Чередуйте культуры на грядках каждый год, чтобы почва не истощалась.",
	"Сидераты, посеянные осенью, весной станут отличным зелёным удобрением.",
}

// Tip renders a random tip of the day as a text message.
func (f *Formatter) Tip() domain.OutboundMessage {
	text := pick(f.rand, tipEmoji) + " " + Bold(f.mode, "Совет дня") + "\n\n" + Escape(f.mode, pick(f.rand, Tips))
	return domain.OutboundMessage{
		Text:      Truncate(f.mode, text, "", f.text),
		ParseMode: f.mode,
	}
}
