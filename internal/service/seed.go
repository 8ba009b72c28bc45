package service

import "github.com/Husniddin989/rustili-lug-at/internal/domain"

// starterVocabulary is loaded into an empty collection so a new learner can
// start a quiz right away. Every category has at least four words.
var starterVocabulary = []domain.WordContent{
	{SourceText: "Привет", TargetText: "Salom", Category: domain.CategoryGreeting,
		Example: "Привет, как дела?", ExampleTranslation: "Salom, ishlaring qalay?"},
	{SourceText: "Здравствуйте", TargetText: "Assalomu alaykum", Category: domain.CategoryGreeting},
	{SourceText: "До свидания", TargetText: "Xayr", Category: domain.CategoryGreeting},
	{SourceText: "Доброе утро", TargetText: "Xayrli tong", Category: domain.CategoryGreeting},
	{SourceText: "Спасибо", TargetText: "Rahmat", Category: domain.CategoryGreeting,
		Example: "Спасибо за помощь!", ExampleTranslation: "Yordamingiz uchun rahmat!"},

	{SourceText: "Читать", TargetText: "O'qimoq", Category: domain.CategoryVerb,
		Example: "Я люблю читать книги.", ExampleTranslation: "Men kitob o'qishni yaxshi ko'raman."},
	{SourceText: "Писать", TargetText: "Yozmoq", Category: domain.CategoryVerb},
	{SourceText: "Говорить", TargetText: "Gapirmoq", Category: domain.CategoryVerb},
	{SourceText: "Идти", TargetText: "Bormoq", Category: domain.CategoryVerb},
	{SourceText: "Есть", TargetText: "Yemoq", Category: domain.CategoryVerb},

	{SourceText: "Дом", TargetText: "Uy", Category: domain.CategoryNoun,
		Example: "Мой дом большой.", ExampleTranslation: "Mening uyim katta."},
	{SourceText: "Книга", TargetText: "Kitob", Category: domain.CategoryNoun},
	{SourceText: "Вода", TargetText: "Suv", Category: domain.CategoryNoun},
	{SourceText: "Хлеб", TargetText: "Non", Category: domain.CategoryNoun},
	{SourceText: "Школа", TargetText: "Maktab", Category: domain.CategoryNoun},

	{SourceText: "Большой", TargetText: "Katta", Category: domain.CategoryAdjective},
	{SourceText: "Маленький", TargetText: "Kichik", Category: domain.CategoryAdjective},
	{SourceText: "Красивый", TargetText: "Chiroyli", Category: domain.CategoryAdjective},
	{SourceText: "Новый", TargetText: "Yangi", Category: domain.CategoryAdjective},

	{SourceText: "Один", TargetText: "Bir", Category: domain.CategoryNumber},
	{SourceText: "Два", TargetText: "Ikki", Category: domain.CategoryNumber},
	{SourceText: "Три", TargetText: "Uch", Category: domain.CategoryNumber},
	{SourceText: "Четыре", TargetText: "To'rt", Category: domain.CategoryNumber},
	{SourceText: "Пять", TargetText: "Besh", Category: domain.CategoryNumber},

	{SourceText: "Как тебя зовут?", TargetText: "Ismingiz nima?", Category: domain.CategoryPhrase},
	{SourceText: "Я не понимаю", TargetText: "Men tushunmayapman", Category: domain.CategoryPhrase},
	{SourceText: "Сколько стоит?", TargetText: "Qancha turadi?", Category: domain.CategoryPhrase},
	{SourceText: "Где находится?", TargetText: "Qayerda joylashgan?", Category: domain.CategoryPhrase},
}

// StarterVocabulary returns a copy of the built-in starter word list.
func StarterVocabulary() []domain.WordContent {
	out := make([]domain.WordContent, len(starterVocabulary))
	copy(out, starterVocabulary)
	return out
}
