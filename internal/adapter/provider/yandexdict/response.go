package yandexdict

// lookupResponse mirrors the Yandex Dictionary lookup answer.
type lookupResponse struct {
	Def []lookupDef `json:"def"`
}

type lookupDef struct {
	Text string     `json:"text"`
	Pos  string     `json:"pos"`
	Tr   []lookupTr `json:"tr"`
}

type lookupTr struct {
	Text string `json:"text"`
	Pos  string `json:"pos"`
}
