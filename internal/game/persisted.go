package game

import "gorm.io/gorm"

// Credential is the persisted Gemini API key. At most one row exists; its
// presence at startup is the sole gate deciding whether the session boots
// into AWAITING_CREDENTIALS or goes straight to brief generation.
type Credential struct {
	gorm.Model
	APIKey string `json:"-" gorm:"column:api_key"`
}

func (Credential) TableName() string { return "credentials" }

// SessionArchive is a summary row written when a run ends (brief replaced
// or credentials cleared). The live History stays in memory per session;
// the archive only keeps aggregate numbers for the read-only archive list.
type SessionArchive struct {
	gorm.Model
	ClientName   string  `json:"client_name"`
	Product      string  `json:"product"`
	MonthsPlayed int     `json:"months_played"`
	TotalSpend   float64 `json:"total_spend"`
	TotalRevenue float64 `json:"total_revenue"`
	FinalBudget  float64 `json:"final_budget"`
}

func (SessionArchive) TableName() string { return "session_archive" }

// ArchiveFromSession builds the summary row for the current run. Returns
// nil when there is nothing worth archiving (no completed month).
func ArchiveFromSession(s *Session) *SessionArchive {
	if s == nil || s.Brief == nil || len(s.History) == 0 {
		return nil
	}
	a := &SessionArchive{
		ClientName:   s.Brief.ClientName,
		Product:      s.Brief.Product,
		MonthsPlayed: len(s.History),
		FinalBudget:  s.Brief.Budget,
	}
	for i := range s.History {
		a.TotalSpend += s.History[i].Total.Spend
		a.TotalRevenue += s.History[i].Total.Revenue
	}
	return a
}
