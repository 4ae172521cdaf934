package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenRevoked       ErrCode = "TOKEN_REVOKED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Quiz flow ─────────────────────────────────────────────────────
	ErrNoQuestions      ErrCode = "NO_QUESTIONS"
	ErrAttemptFinished  ErrCode = "ATTEMPT_FINISHED"
	ErrNavigationDenied ErrCode = "NAVIGATION_DENIED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Email ou mot de passe incorrect."
	case ErrTokenRequired:
		return "Jeton d'authentification requis."
	case ErrTokenInvalid:
		return "Jeton d'authentification invalide."
	case ErrTokenRevoked:
		return "Session expirée. Veuillez vous reconnecter."
	case ErrValidation:
		return "Validation échouée. Vérifiez votre saisie."
	case ErrInvalidID:
		return "Format d'identifiant invalide."
	case ErrInvalidPayload:
		return "Corps de requête invalide."
	case ErrNotFound:
		return "Ressource introuvable."
	case ErrConflict:
		return "Un quiz avec cet identifiant existe déjà."
	case ErrNoQuestions:
		return "Le quiz doit contenir au moins une question."
	case ErrAttemptFinished:
		return "Cette tentative est déjà terminée."
	case ErrNavigationDenied:
		return "Navigation impossible depuis cette question."
	case ErrRateLimitExceeded:
		return "Trop de requêtes. Réessayez plus tard."
	case ErrInternal:
		return "Erreur interne du serveur."
	default:
		return "Une erreur inattendue s'est produite."
	}
}
