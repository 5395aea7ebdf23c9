// SPDX-License-Identifier: MPL-2.0

package wapp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// checkApp verifies the app descriptor and that the routing module it names
// exists inside the app directory. The route inclusion is only meaningful
// when the result passes.
func (v *Validator) checkApp(app AppDescriptor) (RouteInclusion, ValidationResult) {
	if missing := app.Missing(); missing != "" {
		return RouteInclusion{}, v.fail("app", Fail(FailureManifestFormat, MsgManifestFormat), "missing", "app."+missing)
	}

	route := RouteInclusion{MountPath: app.URL(), Module: app.Include()}

	modulePath, ok := RouteModulePath(v.appPath, route.Module)
	if !ok || !isRegularFile(modulePath) {
		msg := fmt.Sprintf("Package %s does not exist.", route.Module)
		return route, v.fail("app", Fail(FailureRouteModule, msg), "path", modulePath)
	}

	return route, Pass()
}

// RouteModulePath maps a dotted include such as "wapps.myapp.urls" to the
// routing module file inside appPath ("<appPath>/urls.py"). The first two
// segments name the app's package and are dropped. ok is false when nothing
// remains after dropping them.
func RouteModulePath(appPath, include string) (path string, ok bool) {
	segments := strings.Split(include, ".")
	if len(segments) <= includePrefixSegments {
		return "", false
	}
	rel := filepath.Join(segments[includePrefixSegments:]...)
	if rel == "" || rel == "." {
		return "", false
	}
	return filepath.Join(appPath, rel+RouteModuleExt), true
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
