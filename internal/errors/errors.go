package errors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Not-found failures: a referenced id has no row.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrMemberNotFound    = errors.New("user is not a member of the campaign")
	ErrCharacterNotFound = errors.New("character not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrEntryNotFound     = errors.New("item is not in the character's inventory")
	ErrJournalNotFound   = errors.New("journal entry not found")
)

// Forbidden failures: the caller is authenticated but lacks the required
// role or ownership.
var (
	ErrNotCampaignGM      = errors.New("only the campaign GM may perform this action")
	ErrNotOwnerOrGM       = errors.New("only the character's owner or the campaign GM may perform this action")
	ErrNotParticipant     = errors.New("only campaign participants may perform this action")
	ErrSecondGM           = errors.New("cannot assign a second GM; transfer GM ownership instead")
	ErrRemoveOwningGM     = errors.New("cannot remove the GM from their own campaign")
	ErrOwnerNotMember     = errors.New("character owner must be a member of the campaign")
	ErrGMOnlyGive         = errors.New("only the campaign GM may grant items")
	ErrOwnerOnlyConsume   = errors.New("only the character's owner may consume items")
	ErrGMOnlyJournal      = errors.New("only the campaign GM may manage journal entries")
	ErrJournalGMOnly      = errors.New("journal entry is visible to the GM only")
	ErrNotJournalAuthor   = errors.New("only the author may access a personal journal entry")
	ErrAdminOnly          = errors.New("only an administrator may manage the item catalog")
	ErrItemDeleteDenied   = errors.New("insufficient privileges to delete an item")
	ErrCharacterForbidden = errors.New("no permission to create a character in this campaign")
)

// Conflict failures: a uniqueness or cardinality invariant would break.
var (
	ErrBlankCampaignName    = errors.New("campaign name must not be blank")
	ErrCampaignNameTaken    = errors.New("campaign with this name already exists")
	ErrCampaignHasCharacter = errors.New("cannot delete campaign: characters still exist in it")
	ErrCharacterLimit       = errors.New("player already has a character in this campaign")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrEmailTaken           = errors.New("email is already taken")
	ErrUserExists           = errors.New("user with this username or email already exists")
	ErrItemNameTaken        = errors.New("item with this name already exists")
	ErrItemInUse            = errors.New("cannot delete item: it is referenced by character inventories")
	ErrUserOwnsCampaign     = errors.New("user is the GM of a campaign; transfer or delete it first")
	ErrUserOwnsCharacter    = errors.New("user owns characters; transfer or delete them first")
	ErrUserAuthoredJournal  = errors.New("user has authored journal entries; delete them first")
)

// Bad-request failures: structurally valid input that violates a domain rule.
var (
	ErrBlankCharacterName = errors.New("character name must not be blank")
	ErrBlankClass         = errors.New("character class must not be blank")
	ErrBlankRace          = errors.New("character race must not be blank")
	ErrLevelTooLow        = errors.New("level must be at least 1")
	ErrMaxHPTooLow        = errors.New("max HP must be at least 1")
	ErrHPOutOfRange       = errors.New("HP must be within [0, maxHp]")
	ErrMaxHPBelowHP       = errors.New("cannot lower max HP below current HP")
	ErrAttributeRange     = errors.New("attributes must be within [1, 30]")
	ErrCharacterNameTaken = errors.New("character with this name already exists in the campaign")
	ErrHPMissing          = errors.New("missing HP value: use ?hp= or a JSON body with set or delta")
	ErrZeroDelta          = errors.New("quantity delta must not be zero")
	ErrQuantityTooLow     = errors.New("quantity must be at least 1")
	ErrNegativeQuantity   = errors.New("quantity must not be negative")
	ErrInsufficientItems  = errors.New("cannot consume more items than the character holds")
	ErrBlankJournalType   = errors.New("journal entry type must not be blank")
	ErrBlankTitle         = errors.New("journal entry title must not be blank")
	ErrBlankContent       = errors.New("journal entry content must not be blank")
	ErrMissingVisibility  = errors.New("journal entry visibility must not be empty")
	ErrInvalidVisibility  = errors.New("unknown journal visibility")
	ErrInvalidRole        = errors.New("unknown campaign role")
	ErrBlankUsername      = errors.New("username must not be blank")
	ErrBlankEmail         = errors.New("email must not be blank")
	ErrBlankPassword      = errors.New("password must not be blank")
	ErrBlankItemName      = errors.New("item name must not be blank")
	ErrNegativeWeight     = errors.New("item weight must not be negative")
	ErrNegativePrice      = errors.New("item price must not be negative")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var notFoundErrs = []error{
	ErrUserNotFound, ErrCampaignNotFound, ErrMemberNotFound,
	ErrCharacterNotFound, ErrItemNotFound, ErrEntryNotFound, ErrJournalNotFound,
}

var forbiddenErrs = []error{
	ErrNotCampaignGM, ErrNotOwnerOrGM, ErrNotParticipant, ErrSecondGM,
	ErrRemoveOwningGM, ErrOwnerNotMember, ErrGMOnlyGive, ErrOwnerOnlyConsume,
	ErrGMOnlyJournal, ErrJournalGMOnly, ErrNotJournalAuthor, ErrAdminOnly,
	ErrItemDeleteDenied, ErrCharacterForbidden,
}

var conflictErrs = []error{
	ErrBlankCampaignName, ErrCampaignNameTaken, ErrCampaignHasCharacter, ErrCharacterLimit,
	ErrUsernameTaken, ErrEmailTaken, ErrUserExists, ErrItemNameTaken,
	ErrItemInUse, ErrUserOwnsCampaign, ErrUserOwnsCharacter, ErrUserAuthoredJournal,
}

var badRequestErrs = []error{
	ErrBlankCharacterName, ErrBlankClass, ErrBlankRace, ErrLevelTooLow,
	ErrMaxHPTooLow, ErrHPOutOfRange, ErrMaxHPBelowHP, ErrAttributeRange,
	ErrCharacterNameTaken, ErrHPMissing, ErrZeroDelta, ErrQuantityTooLow,
	ErrNegativeQuantity, ErrInsufficientItems, ErrBlankJournalType,
	ErrBlankTitle, ErrBlankContent, ErrMissingVisibility, ErrInvalidVisibility,
	ErrInvalidRole, ErrBlankUsername, ErrBlankEmail, ErrBlankPassword,
	ErrBlankItemName, ErrNegativeWeight, ErrNegativePrice,
}

func matchAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unique-constraint
// violations that escape the service layer still report Conflict; any other
// storage-layer error collapses to an opaque internal failure so no
// persistence detail leaks.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case matchAny(err, notFoundErrs):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case matchAny(err, forbiddenErrs):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case matchAny(err, conflictErrs):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return NewHTTPError(http.StatusConflict, "duplicate value violates a uniqueness constraint", "CONFLICT")
	case matchAny(err, badRequestErrs):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BAD_REQUEST")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
