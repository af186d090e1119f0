package models

// Challenge 表示一道「找出漏洞行」的題目
// 題目內容直接寫在程式碼中，不存資料庫
type Challenge struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Difficulty         Difficulty     `json:"difficulty"`
	Code               string         `json:"code"`
	VulnerableLines    []int          `json:"vulnerableLines"`
	Hints              []string       `json:"hints,omitempty"`
	Explanations       map[int]string `json:"explanations"`
	LabURL             string         `json:"labUrl,omitempty"`
	MaxSelectableLines int            `json:"maxSelectableLines,omitempty"`
}

// Difficulty 定義題目難度的類型
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// IsVulnerableLine 判斷選擇的行是否為漏洞行
func (c *Challenge) IsVulnerableLine(line int) bool {
	for _, l := range c.VulnerableLines {
		if l == line {
			return true
		}
	}
	return false
}

// PublicChallenge 是回傳給玩家的題目視圖，不包含答案
type PublicChallenge struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Difficulty         Difficulty `json:"difficulty"`
	Code               string     `json:"code"`
	Hints              []string   `json:"hints,omitempty"`
	LabURL             string     `json:"labUrl,omitempty"`
	MaxSelectableLines int        `json:"maxSelectableLines,omitempty"`
}

// Public 去除漏洞行和解釋等答案欄位
func (c *Challenge) Public() PublicChallenge {
	return PublicChallenge{
		ID:                 c.ID,
		Title:              c.Title,
		Description:        c.Description,
		Difficulty:         c.Difficulty,
		Code:               c.Code,
		Hints:              c.Hints,
		LabURL:             c.LabURL,
		MaxSelectableLines: c.MaxSelectableLines,
	}
}
