package narrative

import (
	"encoding/json"
	"fmt"

	"github.com/avisia/analytics-agent/internal/report"
)

// BuildPrompt assembles the analysis prompt: both period snapshots as
// indented JSON plus the per-channel session evolution, with the fixed
// deployment instructions. The site has no e-commerce meaning, so the
// model is explicitly told never to mention revenue, and the response
// is constrained to four French sections structured with ### headers
// (the markdown subset FormatNarrative understands).
func BuildPrompt(current report.Snapshot, evolution map[string]float64, period report.Period) string {
	dataSummary, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		dataSummary = []byte("{}")
	}
	evolutionSummary, err := json.MarshalIndent(evolution, "", "  ")
	if err != nil {
		evolutionSummary = []byte("{}")
	}

	return fmt.Sprintf(`Vous êtes un expert en analytique spécialisé dans Google Analytics 4.
Analysez ces données GA4 d'acquisition du %s au %s:

%s

Évolutions par rapport au mois précédent:
%s

IMPORTANT: Ce site n'est PAS un site e-commerce. Ne mentionnez jamais le revenu (revenue) dans votre analyse car cette métrique n'est pas pertinente. Concentrez-vous uniquement sur les sessions, conversions (formulaires de contact) et taux d'engagement.

Fournissez en français:
1. Points forts de la performance
2. Analyse du canal Email
3. Analyse des Réseaux Sociaux
4. 3 recommandations actionnables pour l'amélioration

Soyez concis, basé sur les données, et fournissez des recommandations spécifiques.
Répondez uniquement en français.
Utilisez des titres de section avec ### pour structurer votre réponse.
`, period.Start, period.End, dataSummary, evolutionSummary)
}
