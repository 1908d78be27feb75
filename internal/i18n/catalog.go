// Package i18n holds the game's translated strings and picks the language
// a session plays in.
package i18n

// Message keys.
const (
	KeyLoading      = "loading"
	KeyTapToStart   = "tapToStart"
	KeyTapToRestart = "tapToRestart"
	KeyGameOver     = "gameOver"
	KeyBest         = "best"
	KeyYourScore    = "yourScore"
	KeyBestScore    = "bestScore"
	KeyNewRecord    = "newRecord"
	KeyPlayAgain    = "playAgain"
	KeyPaused       = "paused"
	KeyLanguage     = "language"
	KeyScoreboard   = "scoreboard"
)

// Language codes shipped with the game, in cycle order.
const (
	Russian = "ru"
	English = "en"
	Turkish = "tr"
)

// Fallback is used when nothing else names a supported language.
const Fallback = Russian

var order = []string{Russian, English, Turkish}

var names = map[string]string{
	Russian: "Русский",
	English: "English",
	Turkish: "Türkçe",
}

var catalogs = map[string]map[string]string{
	Russian: {
		KeyLoading:      "Загрузка...",
		KeyTapToStart:   "Нажмите, чтобы начать",
		KeyTapToRestart: "Нажмите, чтобы начать заново",
		KeyGameOver:     "Игра окончена",
		KeyBest:         "Рекорд",
		KeyYourScore:    "Ваш счёт",
		KeyBestScore:    "Лучший счёт",
		KeyNewRecord:    "Новый рекорд!",
		KeyPlayAgain:    "Играть снова",
		KeyPaused:       "Пауза",
		KeyLanguage:     "Язык",
		KeyScoreboard:   "Таблица рекордов",
	},
	English: {
		KeyLoading:      "Loading...",
		KeyTapToStart:   "Tap to start",
		KeyTapToRestart: "Tap to restart",
		KeyGameOver:     "Game Over",
		KeyBest:         "Best",
		KeyYourScore:    "Your score",
		KeyBestScore:    "Best score",
		KeyNewRecord:    "New record!",
		KeyPlayAgain:    "Play again",
		KeyPaused:       "Paused",
		KeyLanguage:     "Language",
		KeyScoreboard:   "Scoreboard",
	},
	Turkish: {
		KeyLoading:      "Yükleniyor...",
		KeyTapToStart:   "Başlamak için dokun",
		KeyTapToRestart: "Yeniden başlamak için dokun",
		KeyGameOver:     "Oyun Bitti",
		KeyBest:         "En iyi",
		KeyYourScore:    "Skorun",
		KeyBestScore:    "En iyi skor",
		KeyNewRecord:    "Yeni rekor!",
		KeyPlayAgain:    "Tekrar oyna",
		KeyPaused:       "Duraklatıldı",
		KeyLanguage:     "Dil",
		KeyScoreboard:   "Skor tablosu",
	},
}

// Available returns the supported language codes in cycle order.
func Available() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}

// Name returns the native name of a language, or the code itself.
func Name(lang string) string {
	if n, ok := names[lang]; ok {
		return n
	}
	return lang
}
