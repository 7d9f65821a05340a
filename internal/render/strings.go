package render

import "github.com/ziadkadry99/botdocs/internal/catalog"

// Message keys for interface text.
const (
	msgSectionCommands  = "section.commands"
	msgSectionListeners = "section.listeners"
	msgSectionAudits    = "section.audits"
	msgSectionComps     = "section.components"
	msgChipAll          = "chip.all"
	msgBadgeType        = "badge.type"
	msgBadgeCustomIDs   = "badge.customIds"
	msgComponentModal   = "component.modal"
	msgComponentButton  = "component.button"
	msgParameters       = "params.heading"
	msgNoParameters     = "params.none"
	msgRequired         = "option.required"
	msgOptional         = "option.optional"
	msgBadgeWho         = "badge.who"
	msgBadgePerm        = "badge.perm"
	msgBadgeKey         = "badge.key"
	msgBadgeGroup       = "badge.group"
	msgBadgeFile        = "badge.file"
	msgBadgeEvent       = "badge.event"
	msgFeaturedNone     = "home.featured.none"
	msgLinkInvite       = "link.invite"
	msgLinkSupport      = "link.support"
	msgLinkRepo         = "link.repo"
	msgLegalTerms       = "legal.terms"
	msgLegalPrivacy     = "legal.privacy"
	msgErrorTitle       = "error.title"
	msgErrorMessage     = "error.message"
)

var messages = map[string]catalog.LocalizedText{
	msgSectionCommands:  {"hu": "Parancsok", "en": "Commands"},
	msgSectionListeners: {"hu": "Eventek", "en": "Listeners"},
	msgSectionAudits:    {"hu": "Audit modulok", "en": "Audit modules"},
	msgSectionComps:     {"hu": "Interakciók", "en": "Interactions"},
	msgChipAll:          {"hu": "Minden", "en": "All"},
	msgBadgeType:        {"hu": "Típus", "en": "Type"},
	msgBadgeCustomIDs:   {"hu": "customId-k", "en": "Custom IDs"},
	msgComponentModal:   {"hu": "Modal", "en": "Modal"},
	msgComponentButton:  {"hu": "Gomb", "en": "Button"},
	msgParameters:       {"hu": "Opciók", "en": "Options"},
	msgNoParameters:     {"hu": "Nincs paraméter.", "en": "No parameters."},
	msgRequired:         {"hu": "kötelező", "en": "required"},
	msgOptional:         {"hu": "opcionális", "en": "optional"},
	msgBadgeWho:         {"hu": "Ki használhatja", "en": "Who"},
	msgBadgePerm:        {"hu": "Bot jogosultság", "en": "Bot permission"},
	msgBadgeKey:         {"hu": "Kulcs", "en": "Key"},
	msgBadgeGroup:       {"hu": "Csoport", "en": "Group"},
	msgBadgeFile:        {"hu": "Fájl", "en": "File"},
	msgBadgeEvent:       {"hu": "Event", "en": "Event"},
	msgFeaturedNone:     {"hu": "Nincs beállítva kiemelt parancslista.", "en": "No featured commands configured."},
	msgLinkInvite:       {"hu": "Meghívás", "en": "Invite"},
	msgLinkSupport:      {"hu": "Support szerver", "en": "Support server"},
	msgLinkRepo:         {"hu": "Forráskód", "en": "Source code"},
	msgLegalTerms:       {"hu": "Felhasználási feltételek", "en": "Terms of Service"},
	msgLegalPrivacy:     {"hu": "Adatkezelési tájékoztató", "en": "Privacy Policy"},
	msgErrorTitle:       {"hu": "Hiba", "en": "Error"},
	msgErrorMessage:     {"hu": "Nem sikerült betölteni az oldalt.", "en": "The page could not be loaded."},
}

// text resolves a message key for the environment's locale. Unknown keys
// resolve to the key itself.
func (e Env) text(key string) string {
	return e.Locale.PickText(messages[key], key)
}
