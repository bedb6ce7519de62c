// Package response centralizes the user-facing message strings of the API.
// The surface predates this service and is consumed by a French-language
// frontend; clients key off HTTP status codes, the text is informational.
package response

const (
	MsgUnauthenticated    = "Non authentifié"
	MsgMethodNotAllowed   = "Méthode non autorisée"
	MsgInternal           = "Erreur interne"
	MsgFieldsRequired     = "Email, pseudo et mot de passe requis"
	MsgPasswordTooShort   = "Le mot de passe doit contenir au moins 8 caractères"
	MsgUsernameLength     = "Le pseudo doit contenir entre 3 et 20 caractères"
	MsgUsernameCharset    = "Le pseudo ne peut contenir que des lettres, chiffres et underscores"
	MsgEmailTaken         = "Cet email est déjà enregistré"
	MsgUsernameTaken      = "Ce pseudo est déjà pris"
	MsgLoginRequired      = "Email et mot de passe requis"
	MsgCredentialsInvalid = "Identifiants invalides"

	MsgSelfContact       = "Tu ne peux pas t'ajouter toi-même comme contact"
	MsgContactExists     = "Ce contact existe déjà"
	MsgRequestPending    = "Une demande est déjà en attente"
	MsgUserNotFound      = "Utilisateur non trouvé"
	MsgRequestNotFound   = "Demande non trouvée ou déjà traitée"
	MsgContactNotFound   = "Contact non trouvé"
	MsgContactIDRequired = "ID du contact requis"
	MsgRequestIDRequired = "ID de la demande requis"
	MsgInvalidAction     = "Action invalide (accept ou reject requis)"
	MsgUsernameRequired  = "Pseudo requis"
	MsgRequestSent       = "Demande de contact envoyée"
	MsgRequestRejected   = "Demande refusée"
)
