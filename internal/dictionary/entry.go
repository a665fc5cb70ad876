package dictionary

import "strings"

// Entry は辞書APIの1エントリから取り出した値です
type Entry struct {
	Word       string
	Definition string
	Phonetic   string
	AudioURL   string
	Examples   []string
}

// apiEntry は dictionaryapi.dev のレスポンス要素 (使う項目のみ)
type apiEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// notFoundPayload は見つからなかったときに返るオブジェクト
type notFoundPayload struct {
	Title string `json:"title"`
}

const noDefinitionsTitle = "No Definitions Found"

// toEntry は最初の意味の最初の定義、最大 maxExamples 件の例文、
// 最初の空でない音声・発音記号を取り出します
func (a *apiEntry) toEntry(maxExamples int) *Entry {
	e := &Entry{Word: a.Word, Examples: []string{}}

	if len(a.Meanings) > 0 && len(a.Meanings[0].Definitions) > 0 {
		e.Definition = strings.TrimSpace(a.Meanings[0].Definitions[0].Definition)
	}

collect:
	for _, m := range a.Meanings {
		for _, d := range m.Definitions {
			if len(e.Examples) >= maxExamples {
				break collect
			}
			if ex := strings.TrimSpace(d.Example); ex != "" {
				e.Examples = append(e.Examples, ex)
			}
		}
	}

	for _, p := range a.Phonetics {
		if e.AudioURL == "" {
			e.AudioURL = strings.TrimSpace(p.Audio)
		}
		if e.Phonetic == "" {
			e.Phonetic = strings.TrimSpace(p.Text)
		}
	}
	if e.Phonetic == "" {
		e.Phonetic = strings.TrimSpace(a.Phonetic)
	}
	return e
}
