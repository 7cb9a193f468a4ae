package importer

// Row status texts. These are user-visible and part of the reporting
// contract; do not translate.
const (
	StatusSuccess        = "Succès"
	StatusNoChange       = "Aucun changement"
	StatusDeleted        = "Supprimé avec succès"
	StatusUnknownVillage = "Village inconnu"
	StatusNotFound       = "Erreur: Assuré non trouvé"
	StatusInvalidDob     = "Erreur: Date de naissance invalide"
	StatusDuplicate      = "Erreur: Doublon détecté (nom et date de naissance identiques)"
)

// RowResult is one line of the job report.
type RowResult struct {
	Ligne      int    `json:"ligne"`
	NumeroCamu string `json:"numero_camu"`
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Etat       string `json:"Etat"`
	Remarque   string `json:"remarque"`
}

// NewRowResult derives the OK/KO flag from the status text. Only "Succès"
// and "Aucun changement" map to OK; everything else, including a successful
// deletion, reports KO with the status as the remark. That asymmetry is
// long-standing reporting behavior consumers depend on.
func NewRowResult(ligne int, row ImportRow, status string) RowResult {
	res := RowResult{
		Ligne:      ligne,
		NumeroCamu: row.Identifier(),
		Nom:        row.LastName,
		Prenom:     row.FirstName,
	}
	if status == StatusSuccess || status == StatusNoChange {
		res.Etat = "OK"
		res.Remarque = "-"
	} else {
		res.Etat = "KO"
		res.Remarque = status
	}
	return res
}

// counted reports whether a status counts as a success for the job counters.
func counted(status string) bool {
	switch status {
	case StatusSuccess, StatusNoChange, StatusDeleted:
		return true
	}
	return false
}
