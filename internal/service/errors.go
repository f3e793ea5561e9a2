package service

import (
	"errors"
	"fmt"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/daterange"

	"gorm.io/gorm"
)

// Messages are shown to the user as-is.
var (
	ErrNotFound               = errors.New("Ressource introuvable")
	ErrAgreementTerminated    = errors.New("La convention est résiliée, aucun avenant n'est possible")
	ErrMissingTerminationDate = errors.New("La date de résiliation est obligatoire")
	ErrStaleVersion           = errors.New("Cette version n'est plus la dernière version de la convention, veuillez recharger")
	ErrMissingRequiredField   = errors.New("Champ obligatoire manquant")
	ErrDateInvalide           = errors.New("Format de date invalide, AAAA-MM-JJ attendu")
	ErrTypePrixInvalide       = errors.New("Type de prix inconnu")
	ErrUGInconnue             = errors.New("UG introuvable")
	ErrUGHorsBatiment         = errors.New("Cette UG n'appartient pas au bâtiment")
	ErrUGDupliquee            = errors.New("Une même UG apparaît plusieurs fois dans la demande")
	ErrUGNonAffectee          = errors.New("Cette UG n'est pas affectée à la convention à cette date")
	ErrEquipementInconnu      = errors.New("Équipement introuvable dans la convention")
	ErrEquipementNonActif     = errors.New("Cet équipement n'est pas en place à cette date")
	ErrNumeroExistant         = errors.New("Ce numéro de convention existe déjà")
	ErrConflit                = errors.New("Une modification concurrente a eu lieu, veuillez réessayer")

	ErrTerminationBeforeStart error = &domainError{
		msg:   "La date de résiliation ne peut pas précéder le début de la convention",
		cause: daterange.ErrInvalidRange,
	}
	ErrEffetAvantDebut error = &domainError{
		msg:   "La date d'effet de l'avenant ne peut pas précéder le début de la convention",
		cause: daterange.ErrInvalidRange,
	}
)

// domainError carries its own message while still matching a generic rule.
type domainError struct {
	msg   string
	cause error
}

func (e *domainError) Error() string { return e.msg }
func (e *domainError) Unwrap() error { return e.cause }

func missingField(name string) error {
	return fmt.Errorf("%w : %s", ErrMissingRequiredField, name)
}

func ugIndisponible(nom string, cause error) error {
	return &domainError{
		msg:   fmt.Sprintf("L'UG %s est déjà affectée à une autre convention sur cette période", nom),
		cause: cause,
	}
}

// IsValidation reports whether err is a rule violation the caller can fix,
// as opposed to a missing resource or an infrastructure failure.
func IsValidation(err error) bool {
	if daterange.IsValidation(err) {
		return true
	}
	for _, target := range []error{
		ErrAgreementTerminated,
		ErrMissingTerminationDate,
		ErrStaleVersion,
		ErrMissingRequiredField,
		ErrDateInvalide,
		ErrTypePrixInvalide,
		ErrUGInconnue,
		ErrUGHorsBatiment,
		ErrUGDupliquee,
		ErrUGNonAffectee,
		ErrEquipementInconnu,
		ErrEquipementNonActif,
		ErrNumeroExistant,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// notFound folds gorm's miss into the domain error.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
