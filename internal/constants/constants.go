package constants

// Centralized constants for env keys, the Gemini integration, routes and
// user-facing error messages.
const (
	// Environment variable keys
	EnvConfigPath = "ADSIM_CONFIG"
	EnvDBPath     = "ADSIM_DB"
	EnvAddr       = "ADSIM_ADDR"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	// Gemini API endpoint and model. The API key is supplied by the player
	// at runtime (AWAITING_CREDENTIALS view), never via environment.
	GeminiBaseURL             = "https://generativelanguage.googleapis.com"
	GeminiGenerateContentPath = "/v1beta/models/%s:generateContent"
	GeminiModel               = "gemini-2.5-flash"

	// Suffix appended to prompts that must return machine-readable JSON.
	GeminiJSONSuffix = "\n\nResponse must be valid JSON only. No markdown formatting."
)

// Routes used by the backend router
const (
	RouteAPIPrefix       = "/api"
	RouteState           = "/state"
	RouteCredentials     = "/credentials"
	RouteBriefAccept     = "/brief/accept"
	RouteBriefRegenerate = "/brief/regenerate"
	RouteAllocation      = "/allocation"
	RouteRun             = "/run"
	RouteNextMonth       = "/next"
	RouteQA              = "/qa"
	RouteChallengeAnswer = "/challenge/answer"
	RouteChallengeClose  = "/challenge/close"
	RouteModal           = "/modal"
	RouteHistory         = "/history"
	RouteArchive         = "/archive"
	RouteHealthz         = "/healthz"
	RouteVersion         = "/version"
)

// Common JSON response keys
const (
	JSONKeyError = "error"
	JSONKeyState = "state"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrCredentialRequired  = "API key is required"
	ErrProviderFailed      = "The client is unreachable right now; try again"
	ErrBudgetExceeded      = "Allocation exceeds the client budget"
	ErrDuplicateSubmission = "Already submitted; wait for the current step"
	ErrInvalidTransition   = "Operation not allowed in the current view"
	ErrChallengeNotScored  = "Answer the client review first"
	ErrModalNotAllowed     = "No overlay is available in this view"
	ErrInvalidAllocation   = "Allocation amounts must be non-negative"
	ErrQuestionRequired    = "Question text is required"
	ErrAnswerRequired      = "Answer text is required"
	ErrFailedFetchArchive  = "Failed to fetch archive"
)

// Inline placeholders shown when an evaluator call fails mid-session.
const (
	QAAnswerPending           = "..."
	QAAnswerFailed            = "（通信エラー）すみません、もう一度伺えますか？"
	ChallengeQuestionFallback = "先月の結果について、予算配分の意図と来四半期の改善計画を説明してください。"
	ChallengeFeedbackFailed   = "（通信エラー）回答は受け取りました。今回は評価を見送ります。"
)

// Logging field names
const (
	LogFieldView      = "view"
	LogFieldEpoch     = "epoch"
	LogFieldQAID      = "qa_id"
	LogFieldChallenge = "challenge_id"
	LogFieldAddr      = "addr"
	LogFieldMonth     = "month"
	LogFieldYear      = "year"
	LogFieldScore     = "score"
	LogFieldBonus     = "bonus"
	LogFieldClient    = "client"
)
