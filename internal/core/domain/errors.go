package domain

import "errors"

// Authentication.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("missing or malformed authorization header")
	ErrInvalidToken       = errors.New("invalid token")
)

// Authorization.
var (
	ErrForbidden        = errors.New("access forbidden")
	ErrAdminRequired    = errors.New("admin role required")
	ErrArticleForbidden = errors.New("not the article author")
	ErrCommentForbidden = errors.New("not the comment author")
	ErrSelfDelete       = errors.New("admin cannot delete own account")
	ErrSelfRoleChange   = errors.New("admin cannot change own role")
)

// Resources.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrArticleNotFound = errors.New("article not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidRole     = errors.New("invalid role")
)

// Internal invariants. These always surface as a generic 500.
var (
	ErrCorruptPasswordHash = errors.New("stored password hash is malformed")
	ErrMissingIdentity     = errors.New("identity missing from request context")
)

// User-facing validation messages.
const (
	MsgRegisterFieldsRequired = "Tous les champs sont requis"
	MsgLoginFieldsRequired    = "Email et mot de passe requis"
	MsgProfileFieldsRequired  = "Le nom d'utilisateur et l'email sont requis"
	MsgPasswordTooShort       = "Le mot de passe doit contenir au moins 8 caractères"
	MsgPasswordTooLong        = "Le mot de passe ne doit pas dépasser 72 octets"
	MsgCommentContentRequired = "Le contenu du commentaire est requis"
	MsgArticleFieldsRequired  = "Le titre et le contenu sont requis"
	MsgUsernameTooLong        = "Le nom d'utilisateur ne doit pas dépasser 64 caractères"
	MsgEmailTooLong           = "L'email ne doit pas dépasser 255 caractères"
	MsgTitleTooLong           = "Le titre ne doit pas dépasser 255 caractères"
	MsgValueTooLong           = "Valeur trop longue"
	MsgInvalidID              = "Identifiant invalide"
	MsgInvalidPayload         = "Requête invalide"
)

// MinPasswordLength applies to registration and to password changes.
const MinPasswordLength = 8

// Column limits of the schema, in characters.
const (
	MaxUsernameLength = 64
	MaxEmailLength    = 255
	MaxTitleLength    = 255
)

// ValidationError is a 400-class input error whose message is safe to return
// to the client as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
