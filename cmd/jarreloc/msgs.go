package jarreloc

// Short messages (one-liners)
const (
	MsgRootShort       = "Relocate packages inside an exploded jar"
	MsgRelocateShort   = "Relocate classes and resources under a directory in place"
	MsgGenConfigShort  = "Generate a sample configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"

	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (.toml, .yaml or .yml)"
	MsgFlagLogFile   = "Write the log to this file instead of the XDG state dir"
	MsgFlagNoColor   = "Disable coloured log output"
	MsgFlagRelocate  = "Relocation as pattern=replacement, e.g. com.google=shaded.com.google (repeatable)"
	MsgFlagPrune     = "Remove each source file once it has been relocated elsewhere"
	MsgFlagKeepTemp  = "Keep the .tmp file of a failed write for inspection"
	MsgFlagDryRun    = "Show what would be relocated without changing any file"
	MsgFlagList      = "List every moved entry in the summary"
	MsgFlagWrite     = "Write the config to the user config file instead of stdout"
	MsgNoRelocations = "no relocations configured: pass -r pattern=replacement or set relocations in a config file"
	MsgConfigExists  = "config file %s already exists"
	MsgConfigWritten = "Wrote %s\n"
)

// Long messages
const (
	MsgRootLong = `jarreloc relocates ("shades") Java packages inside an exploded jar.

Class files are rewritten so every reference to a relocated package uses its
new name, resources move along with their package, signature files are
dropped and digests are removed from the manifest. Every file is written
through a temp file and a rename, so an interrupted run never leaves a
partially written file.`

	MsgRelocateLong = `Relocate walks <dir>, the root of an exploded jar, and moves every class and
resource matched by a relocation to its new package, in place.

Relocations come from -r flags and the relocations list of the configuration;
-r flags are tried first, and the first relocation that matches a name wins.`

	MsgRelocateExample = `  jarreloc relocate build/classes -r com.google.common=com.example.shaded.guava
  jarreloc relocate build/classes --config shading.toml --prune
  jarreloc relocate build/classes -r org.slf4j=shaded.org.slf4j --dry-run --list`

	MsgGenConfigLong = `Output a sample configuration to stdout, with every value commented out.

With -w the sample is written to the user config file,
$XDG_CONFIG_HOME/jarreloc/config.toml, which must not exist yet.`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(jarreloc completion bash)

Zsh:
  $ jarreloc completion zsh > "${fpath[1]}/_jarreloc"

Fish:
  $ jarreloc completion fish | source

PowerShell:
  PS> jarreloc completion powershell | Out-String | Invoke-Expression
`
)
