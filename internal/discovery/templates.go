package discovery

import "regexp"

// Template describes one known template class: how to find its support jars in
// the installation's lib directory and which script files it claims.
type Template struct {
	// Name is a human-readable label.
	Name string

	// Class is the fully-qualified template class name.
	Class string

	// FilePattern is the script file pattern the resulting definition claims.
	FilePattern string

	// JarRule matches the names of the template support jars.
	JarRule *regexp.Regexp

	// SupplementaryRule matches additional lib-dir jars added to the load
	// request's supplementary classpath. May be nil.
	SupplementaryRule *regexp.Regexp
}

var kotlinDSLJarRule = regexp.MustCompile(`^gradle-(?:kotlin-dsl|core)(?:-.+)?\.jar$`)

// kotlinStdlibRule picks up the runtime jars every Kotlin DSL template needs
// on the resolver classpath in addition to its own support jars.
var kotlinStdlibRule = regexp.MustCompile(`^kotlin-(?:stdlib|reflect)(?:-.+)?\.jar$`)

// PrimaryTemplates is the fixed priority list for discovery. The build-script
// template goes last: its file pattern is the broadest and would shadow the
// more specific templates if evaluated first.
var PrimaryTemplates = []Template{
	{
		Name:              "Gradle init script",
		Class:             "org.gradle.kotlin.dsl.KotlinInitScript",
		FilePattern:       `.*\.init\.gradle\.kts`,
		JarRule:           kotlinDSLJarRule,
		SupplementaryRule: kotlinStdlibRule,
	},
	{
		Name:              "Gradle settings script",
		Class:             "org.gradle.kotlin.dsl.KotlinSettingsScript",
		FilePattern:       `settings\.gradle\.kts`,
		JarRule:           kotlinDSLJarRule,
		SupplementaryRule: kotlinStdlibRule,
	},
	{
		Name:              "Gradle build script",
		Class:             "org.gradle.kotlin.dsl.KotlinBuildScript",
		FilePattern:       `.*\.gradle\.kts`,
		JarRule:           kotlinDSLJarRule,
		SupplementaryRule: kotlinStdlibRule,
	},
}

// LegacyTemplate is attempted only when every primary template yields nothing.
var LegacyTemplate = Template{
	Name:              "Gradle build script (legacy)",
	Class:             "org.gradle.script.lang.kotlin.KotlinBuildScript",
	FilePattern:       `.*\.gradle\.kts`,
	JarRule:           regexp.MustCompile(`^gradle-script-kotlin(?:-.+)?\.jar$`),
	SupplementaryRule: kotlinStdlibRule,
}
