// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strings"

	"github.com/invowk/wappcheck/pkg/wapp"

	"github.com/charmbracelet/glamour"
)

const (
	ManifestMissingId Id = iota + 1
	ManifestFormatId
	RouteModuleId
	CompatibilityId
	DatabaseId
	StaticLayoutId
	AppDirectoryId
	ConfigLoadFailedId
	RegistryUnavailableId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id    Id          // ID used to lookup the issue
		mdMsg MarkdownMsg // Markdown text that will be rendered
		links []HttpLink  // external references, optional
	}
)

var (
	render = glamour.Render

	manifestMissingIssue = &Issue{
		id: ManifestMissingId,
		mdMsg: `
# wf_config.json does not exist

Every wapp carries its manifest at the root of its app directory:

~~~
warriorframework_py3/katana/katana.wapps/<app>/wf_config.json
~~~

## Things you can try:
- Check that the package was extracted completely
- Make sure the file name is exactly ` + "`wf_config.json`" + ` (case matters)`,
	}

	manifestFormatIssue = &Issue{
		id: ManifestFormatId,
		mdMsg: `
# wf_config.json is not in the correct format

The manifest must be a JSON object with these keys:

~~~json
{
  "app": {
    "name": "demo",
    "url": "/katana/demo/",
    "include": "katana.wapps.demo.urls"
  },
  "version": "1.0.0",
  "warrior-compatibility": "3.4.0:",
  "warrior-incompatibility": ""
}
~~~

## Things you can try:
- Validate the file with a JSON linter; comments and trailing commas are not allowed
- Make sure ` + "`app`" + ` contains ` + "`name`" + `, ` + "`url`" + ` and ` + "`include`" + `
- Re-run with ` + "`--verbose`" + ` to see which key is missing`,
	}

	routeModuleIssue = &Issue{
		id: RouteModuleId,
		mdMsg: `
# The route module named by app.include does not exist

The dotted ` + "`include`" + ` path is resolved inside the app directory after
dropping its first two segments: ` + "`katana.wapps.demo.urls`" + ` must be
shipped as ` + "`demo/urls.py`" + `.

## Things you can try:
- Check the spelling of ` + "`app.include`" + `
- Make sure the module file is part of the package`,
	}

	compatibilityIssue = &Issue{
		id: CompatibilityId,
		mdMsg: `
# The wapp is not compatible with this framework version

` + "`warrior-compatibility`" + ` and ` + "`warrior-incompatibility`" + ` are
comma-separated lists of versions and at most one inclusive range:

~~~
"warrior-compatibility": "3.2.0, 3.4.0:3.6.0"
"warrior-incompatibility": "[3.5.0:3.5.2]"
~~~

Exact versions must be released framework versions. An empty side of a range
is open.

## Things you can try:
- List the known framework versions with ` + "`wappcheck versions`" + `
- Pass the target framework with ` + "`--framework-version`",
		links: []HttpLink{"https://semver.org"},
	}

	databaseIssue = &Issue{
		id: DatabaseId,
		mdMsg: `
# Database settings are not namespaced by the app

Every key of ` + "`database`" + ` (or of each entry, when it is a list) must
start with the app name, so apps cannot overwrite each other's settings.

~~~json
"database": {"demo_engine": "sqlite3", "demo_name": "demo.db"}
~~~`,
	}

	staticLayoutIssue = &Issue{
		id: StaticLayoutId,
		mdMsg: `
# static directory does not follow the required layout

~~~
static/
└── <app>/
    ├── js/        all .js files live here
    └── css/
~~~

## Things you can try:
- Move loose files from ` + "`static/`" + ` into ` + "`static/<app>/`" + `
- Move scripts into ` + "`static/<app>/js/`" + `, or set ` + "`pure_django`" + ` for Django-templated apps`,
	}

	appDirectoryIssue = &Issue{
		id: AppDirectoryId,
		mdMsg: `
# Could not find the app directory

An installation package holds exactly one app directory under
` + "`warriorframework_py3/katana/katana.wapps/`" + `.

## Things you can try:
- Point ` + "`wappcheck validate`" + ` at the package root, not at the app directory
- Remove stray directories left over from earlier builds`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

## Things you can try:
- Print the effective configuration:
~~~
$ wappcheck config show
~~~
- Recreate the default file:
~~~
$ wappcheck config init
~~~`,
		links: []HttpLink{"https://cuelang.org/docs/"},
	}

	registryUnavailableIssue = &Issue{
		id: RegistryUnavailableId,
		mdMsg: `
# The framework version is unknown

Compatibility checks need the running framework version and the list of
released versions.

## Things you can try:
- Pass ` + "`--framework-version 3.6.0`" + `
- Set ` + "`framework.version`" + ` in the config file or ` + "`WAPPCHECK_FRAMEWORK_VERSION`" + `
- Point ` + "`--registry`" + ` at a YAML or TOML file with ` + "`current`" + ` and ` + "`versions`",
	}

	issues = map[Id]*Issue{
		manifestMissingIssue.Id():     manifestMissingIssue,
		manifestFormatIssue.Id():      manifestFormatIssue,
		routeModuleIssue.Id():         routeModuleIssue,
		compatibilityIssue.Id():       compatibilityIssue,
		databaseIssue.Id():            databaseIssue,
		staticLayoutIssue.Id():        staticLayoutIssue,
		appDirectoryIssue.Id():        appDirectoryIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		registryUnavailableIssue.Id(): registryUnavailableIssue,
	}

	kinds = map[wapp.FailureKind]Id{
		wapp.FailureManifestMissing: ManifestMissingId,
		wapp.FailureManifestFormat:  ManifestFormatId,
		wapp.FailureRouteModule:     RouteModuleId,
		wapp.FailureCompatibility:   CompatibilityId,
		wapp.FailureDatabase:        DatabaseId,
		wapp.FailureStaticLayout:    StaticLayoutId,
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Links() []HttpLink {
	return slices.Clone(i.links)
}

// Render renders the issue as terminal Markdown. stylePath is a glamour
// style name ("dark", "light", "notty", "auto") or a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.links) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.links {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

// Values returns every issue ordered by Id.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	values := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		values = append(values, issues[id])
	}
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}

// ForKind returns the guidance for a failed validation result, or nil for
// an unknown kind.
func ForKind(kind wapp.FailureKind) *Issue {
	id, ok := kinds[kind]
	if !ok {
		return nil
	}
	return issues[id]
}
