// Package i18n holds the user-facing strings of every presentation layer in
// the supported display languages. Messages live in a golang.org/x/text
// catalog and are formatted with a per-language message.Printer, which also
// localizes numbers.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/davetashner/triage/internal/severity"
)

// Lang is a display language, stored as its BCP 47 base code.
type Lang string

// Supported languages.
const (
	English Lang = "en"
	French  Lang = "fr"
)

// Default is used when no language preference is stored.
const Default = English

var tags = map[Lang]language.Tag{
	English: language.English,
	French:  language.French,
}

// Parse validates a language code. Regional variants such as "fr-CA" map to
// their base language.
func Parse(s string) (Lang, error) {
	tag, err := language.Parse(s)
	if err == nil {
		base, _ := tag.Base()
		if l := Lang(base.String()); l.supported() {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q (want en or fr)", s)
}

func (l Lang) supported() bool {
	_, ok := tags[l]
	return ok
}

// OrDefault returns l, or Default when l is not supported.
func (l Lang) OrDefault() Lang {
	if !l.supported() {
		return Default
	}
	return l
}

// Tag returns the language tag of l.
func (l Lang) Tag() language.Tag { return tags[l.OrDefault()] }

// Toggle returns the other language.
func (l Lang) Toggle() Lang {
	if l.OrDefault() == English {
		return French
	}
	return English
}

// Message keys.
const (
	MsgLoaded        = "loaded"
	MsgEmpty         = "empty"
	MsgParseError    = "parse_error"
	MsgNetworkError  = "network_error"
	MsgReset         = "reset"
	MsgResetConfirm  = "reset_confirm"
	MsgSummary       = "summary"
	MsgFilteredOn    = "filtered_on"
	MsgNoIssues      = "no_issues"
	MsgDemoMissing   = "demo_missing"
	MsgColSeverity   = "col_severity"
	MsgColType       = "col_type"
	MsgColFile       = "col_file"
	MsgColLine       = "col_line"
	MsgColMessage    = "col_message"
	MsgColDone       = "col_done"
	MsgSearch        = "search"
	MsgOnlyOpen      = "only_open"
	MsgExport        = "export"
	MsgResetButton   = "reset_button"
	MsgImport        = "import"
	MsgDemo          = "demo"
	MsgFiles         = "files"
	MsgClearFilter   = "clear_filter"
	MsgProgress      = "progress"
	MsgCopied        = "copied"
	MsgTitle         = "title"
	MsgStars         = "stars"
	MsgToggleTheme   = "toggle_theme"
	MsgToggleLang    = "toggle_lang"
	MsgUnknownID     = "unknown_id"
	MsgHelpShortcuts = "help_shortcuts"
)

// translations is the source of the message catalog, keyed by language.
var translations = map[Lang]map[string]string{
	English: {
		MsgLoaded:        "Report loaded",
		MsgEmpty:         "Empty file",
		MsgParseError:    "Parse error: %s",
		MsgNetworkError:  "Network error: %s",
		MsgReset:         "State reset",
		MsgResetConfirm:  "Reset all checked issues?",
		MsgSummary:       "%d files • %d issues",
		MsgFilteredOn:    "Filtered on: %s",
		MsgNoIssues:      "No issues to show",
		MsgDemoMissing:   "No demo report found",
		MsgColSeverity:   "Severity",
		MsgColType:       "Type",
		MsgColFile:       "File",
		MsgColLine:       "Line",
		MsgColMessage:    "Message",
		MsgColDone:       "Done",
		MsgSearch:        "Search…",
		MsgOnlyOpen:      "Only open",
		MsgExport:        "Export state",
		MsgResetButton:   "Reset",
		MsgImport:        "Import a report",
		MsgDemo:          "Load demo",
		MsgFiles:         "Files",
		MsgClearFilter:   "Clear file filter",
		MsgProgress:      "%d/%d done",
		MsgCopied:        "Copied: %s",
		MsgTitle:         "Static analysis dashboard",
		MsgStars:         "%d stars",
		MsgToggleTheme:   "Toggle theme",
		MsgToggleLang:    "Français",
		MsgUnknownID:     "No issue matches %q",
		MsgHelpShortcuts: "space toggle • / search • o only open • s sort • f file filter • t theme • l language • q quit",
	},
	French: {
		MsgLoaded:        "Rapport chargé",
		MsgEmpty:         "Fichier vide",
		MsgParseError:    "Erreur parsing: %s",
		MsgNetworkError:  "Erreur réseau: %s",
		MsgReset:         "État réinitialisé",
		MsgResetConfirm:  "Réinitialiser toutes les cases cochées ?",
		MsgSummary:       "%d fichiers • %d issues",
		MsgFilteredOn:    "Filtré sur: %s",
		MsgNoIssues:      "Aucune issue à afficher",
		MsgDemoMissing:   "Aucun rapport de démo trouvé",
		MsgColSeverity:   "Sévérité",
		MsgColType:       "Type",
		MsgColFile:       "Fichier",
		MsgColLine:       "Ligne",
		MsgColMessage:    "Message",
		MsgColDone:       "Fait",
		MsgSearch:        "Rechercher…",
		MsgOnlyOpen:      "Non traitées",
		MsgExport:        "Exporter l'état",
		MsgResetButton:   "Réinitialiser",
		MsgImport:        "Importer un rapport",
		MsgDemo:          "Charger la démo",
		MsgFiles:         "Fichiers",
		MsgClearFilter:   "Retirer le filtre fichier",
		MsgProgress:      "%d/%d traitées",
		MsgCopied:        "Copié: %s",
		MsgTitle:         "Tableau de bord d'analyse statique",
		MsgStars:         "%d étoiles",
		MsgToggleTheme:   "Changer de thème",
		MsgToggleLang:    "English",
		MsgUnknownID:     "Aucune issue ne correspond à %q",
		MsgHelpShortcuts: "espace cocher • / chercher • o non traitées • s trier • f filtre fichier • t thème • l langue • q quitter",
	},
}

var severityLabels = map[Lang]map[severity.Level]string{
	English: {
		severity.Critical: "Critical",
		severity.High:     "High",
		severity.Normal:   "Normal",
		severity.Low:      "Low",
		severity.Info:     "Info",
	},
	French: {
		severity.Critical: "Critique",
		severity.High:     "Élevée",
		severity.Normal:   "Normal",
		severity.Low:      "Faible",
		severity.Info:     "Info",
	},
}

func severityKey(lv severity.Level) string { return "severity." + string(lv) }

var (
	messages = newCatalog()
	printers = map[Lang]*message.Printer{
		English: message.NewPrinter(language.English, message.Catalog(messages)),
		French:  message.NewPrinter(language.French, message.Catalog(messages)),
	}
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for l, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tags[l], key, msg); err != nil {
				panic(fmt.Sprintf("i18n: %s %s: %v", l, key, err))
			}
		}
		for lv, label := range severityLabels[l] {
			if err := b.SetString(tags[l], severityKey(lv), label); err != nil {
				panic(fmt.Sprintf("i18n: %s %s: %v", l, lv, err))
			}
		}
	}
	return b
}

// T returns the message for key in l, formatted with args. Unknown keys
// return the key itself.
func T(l Lang, key string, args ...any) string {
	if _, ok := translations[English][key]; !ok {
		return key
	}
	return printers[l.OrDefault()].Sprintf(key, args...)
}

// Severity returns the display label of a level.
func Severity(l Lang, lv severity.Level) string {
	if !lv.Valid() {
		lv = severity.Info
	}
	return printers[l.OrDefault()].Sprintf(severityKey(lv))
}
