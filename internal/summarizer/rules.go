package summarizer

import (
	"strings"
	"time"
)

// TopicRule maps any of its keywords to a series label.
type TopicRule struct {
	Series   string
	Keywords []string
}

// SeasonalRule applies only in the listed months.
type SeasonalRule struct {
	Series   string
	Months   []time.Month
	Keywords []string
}

// DefaultTopics is checked in order; the first match wins.
var DefaultTopics = []TopicRule{
	{Series: "Томаты", Keywords: []string{"томат", "помидор"}},
	{Series: "Огурцы", Keywords: []string{"огурц", "огурец", "огуреч"}},
	{Series: "Рассада", Keywords: []string{"рассад", "сеянц", "пикировк"}},
	{Series: "Теплица", Keywords: []string{"теплиц", "парник"}},
	{Series: "ЯгодныйСад", Keywords: []string{"клубник", "земляник", "смородин", "малин", "крыжовник"}},
	{Series: "ПлодовыйСад", Keywords: []string{"яблон", "груш", "вишн", "черешн", "обрезк"}},
	{Series: "Цветник", Keywords: []string{"клумб", "цветник", "многолетник", "однолетник", "пион", "тюльпан"}},
	{Series: "ЗащитаРастений", Keywords: []string{"вредител", "фитофтор", "мучнист", "гнил"}},
	{Series: "Удобрения", Keywords: []string{"удобрен", "подкорм", "компост", "перегно"}},
}

// DefaultSeasons covers the gardening calendar when no topic matched.
var DefaultSeasons = []SeasonalRule{
	{
		Series:   "ВесенниеРаботы",
		Months:   []time.Month{time.March, time.April, time.May},
		Keywords: []string{"посев", "посадк", "семен", "грунт", "весн"},
	},
	{
		Series:   "ЛетнийУход",
		Months:   []time.Month{time.June, time.July, time.August},
		Keywords: []string{"полив", "прополк", "мульч", "урожа", "жар"},
	},
	{
		Series:   "ОсенниеРаботы",
		Months:   []time.Month{time.September, time.October, time.November},
		Keywords: []string{"урожа", "хранени", "укрыт", "осен", "зим"},
	},
	{
		Series:   "ЗимнийСад",
		Months:   []time.Month{time.December, time.January, time.February},
		Keywords: []string{"снег", "мороз", "укрыт", "планир", "семен", "зим"},
	},
}

// Classifier picks a series label for an article.
type Classifier struct {
	topics  []TopicRule
	seasons []SeasonalRule
}

// NewClassifier builds a classifier over the given rule tables.
func NewClassifier(topics []TopicRule, seasons []SeasonalRule) Classifier {
	return Classifier{topics: topics, seasons: seasons}
}

// Classify matches keywords case-insensitively against title and summary.
// Topic rules win over seasonal ones; no match yields "".
func (c Classifier) Classify(title, summary string, now time.Time) string {
	haystack := strings.ToLower(title + "\n" + summary)

	for _, rule := range c.topics {
		if containsAny(haystack, rule.Keywords) {
			return rule.Series
		}
	}
	for _, rule := range c.seasons {
		if inMonths(now.Month(), rule.Months) && containsAny(haystack, rule.Keywords) {
			return rule.Series
		}
	}
	return ""
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func inMonths(m time.Month, months []time.Month) bool {
	for _, candidate := range months {
		if candidate == m {
			return true
		}
	}
	return false
}
