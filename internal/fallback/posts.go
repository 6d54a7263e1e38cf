package fallback

import "github.com/pukadigital/content-hub/internal/models"

// DefaultPosts is the curated backup dataset for the PukaDigital site.
// It keeps the blog renderable when the CMS is down; edit deliberately.
func DefaultPosts() []models.Post {
	return []models.Post{
		{
			ID:       "fallback-1",
			Slug:     "welcome-post",
			Title:    "Bienvenido a PukaDigital",
			Excerpt:  "Quiénes somos y cómo ayudamos a tu negocio a crecer en digital.",
			Content: "PukaDigital es una agencia de servicios digitales. Diseñamos sitios web, " +
				"campañas de marketing y estrategias de contenido para empresas que quieren " +
				"crecer en línea. En este blog compartimos lo que aprendemos en el camino.",
			Category: "agencia",
			Date:     "2025-01-15T09:00:00Z",
		},
		{
			ID:       "fallback-2",
			Slug:     "second-post",
			Title:    "Por qué tu negocio necesita presencia digital",
			Excerpt:  "Tres razones concretas para invertir en tu presencia en línea este año.",
			Content: "La mayoría de tus clientes te busca primero en internet. Un sitio rápido, " +
				"contenido útil y una estrategia de posicionamiento marcan la diferencia entre " +
				"ser encontrado o ser invisible.",
			Category: "marketing",
			Date:     "2025-02-10T09:00:00Z",
		},
		{
			ID:       "fallback-3",
			Slug:     "third-post",
			Title:    "Cómo medimos resultados en PukaDigital",
			Excerpt:  "Métricas que importan: tráfico, conversión y retención, sin humo.",
			Content: "No creemos en reportes de vanidad. Medimos visitas que se convierten en " +
				"clientes, cuánto cuesta cada conversión y qué canales sostienen el crecimiento " +
				"a largo plazo.",
			Category: "analitica",
			Date:     "2025-03-05T09:00:00Z",
		},
	}
}
