package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/greenthumb/internal/config"
)

var completionCommands = []string{
	"tui", "ls", "due", "add", "water", "fertilize", "care", "set", "rm",
	"export", "doctor", "tail", "config", "completion", "version", "help",
}

var completionGlobalFlags = []string{
	"-data", "-log-dir", "-log-level", "-log-format", "-today", "-help", "-version",
}

// completionCommand prints a shell completion script.
func completionCommand(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: greenthumb completion bash|zsh|fish|powershell")
	}

	commands := strings.Join(completionCommands, " ")
	flags := strings.Join(completionGlobalFlags, " ")

	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Fprintf(stdout, `# greenthumb bash completion
_greenthumb() {
    local cur="${COMP_WORDS[COMP_CWORD]}"
    if [[ "$cur" == -* ]]; then
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
    else
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
    fi
}
complete -F _greenthumb greenthumb
`, flags, commands)
	case "zsh":
		fmt.Fprintf(stdout, `#compdef greenthumb
# greenthumb zsh completion
_greenthumb() {
    local -a commands
    commands=(%s)
    _arguments '*: :->args'
    compadd -a commands
}
compdef _greenthumb greenthumb
`, commands)
	case "fish":
		fmt.Fprintln(stdout, "# greenthumb fish completion")
		fmt.Fprintf(stdout, "complete -c greenthumb -f -n '__fish_use_subcommand' -a '%s'\n", commands)
		for _, f := range completionGlobalFlags {
			fmt.Fprintf(stdout, "complete -c greenthumb -o '%s'\n", strings.TrimPrefix(f, "-"))
		}
	case "powershell", "pwsh":
		quoted := make([]string, len(completionCommands))
		for i, c := range completionCommands {
			quoted[i] = "'" + c + "'"
		}
		fmt.Fprintf(stdout, `# greenthumb PowerShell completion
Register-ArgumentCompleter -Native -CommandName greenthumb -ScriptBlock {
    param($wordToComplete)
    @(%s) | Where-Object { $_ -like "$wordToComplete*" } |
        ForEach-Object { [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_) }
}
`, strings.Join(quoted, ", "))
	default:
		return fmt.Errorf("unsupported shell %q (valid: bash, zsh, fish, powershell)", args[0])
	}
	return nil
}
