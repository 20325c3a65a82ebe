package detector

import "github.com/fuzumoe/jobcull-api/internal/fetch"

// DefaultRegistry wires every known vendor in priority order. A matched
// vendor's verdict is authoritative, so ordering only matters where
// signatures could overlap; Workday goes first because its wrapped URLs
// sometimes embed other vendors' hostnames in tracking parameters.
func DefaultRegistry(client *fetch.Client, renderer Renderer) *Registry {
	r := NewRegistry(
		Entry{contains("workdayjobs", "workdaysite"), NewWorkday(client)},
		Entry{contains("greenhouse.io"), NewGreenhouse(client)},
		Entry{contains("ultipro.com"), NewUltipro(client)},
		Entry{contains("oraclecloud.com"), NewOracle(renderer)},
		Entry{contains("icims.com"), NewICIMS(client)},
		Entry{contains("dayforcehcm.com"), NewDayforce(client)},
		Entry{contains("taleo.net", "taleo.com"), NewTaleo(client)},
	)

	for _, source := range redirectSources {
		src := source
		r.Append(Entry{contains(src), NewRedirectSource(client, src)})
	}
	for _, source := range requestTextSources {
		src := source
		r.Append(Entry{contains(src), NewRequestText(client, src)})
	}

	return r
}
