package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/cpictl/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for cpictl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_cpictl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "get sanitize resolve verify warm purge completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local source="--data-dir -d --indicator --attribute --fallback --first-year --last-year --aws-profile --aws-region --s3-endpoint"
    local output="--attrs -a --color -c --filter -f --output -o --schema --sort -s --titles -t"

    case "$cmd" in
        get)
            local opts="$source $output --country -n --quiet -q"
            ;;
        sanitize|resolve|verify)
            local opts="$source --country -n"
            ;;
        warm)
            local opts="$source --country -n --limit -l"
            ;;
        purge)
            local opts="--data-dir -d --older-than"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$source"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml csv raw" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--data-dir" || "$prev" == "-d" ]]; then
        COMPREPLY=( $(compgen -o dirnames -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _cpictl cpictl
`

const zshCompletionScript = `#compdef cpictl

_cpictl() {
  local -a cmds
  cmds=(
    'get:get the CPI series for a country'
    'sanitize:rebuild a country cache from the raw table'
    'resolve:show the source that would be read'
    'verify:compare a country cache with the raw table'
    'warm:build caches for several countries'
    'purge:remove cache files'
    'completion:generate shell completion script'
  )

  local -a source
  source=(
  '(-d --data-dir)'{-d,--data-dir}'[data directory]:dir:_directories'
  '--indicator[indicator code]:indicator'
  '--attribute[attribute]:attribute'
  '--fallback[raw table name or s3 uri]:fallback'
  '--first-year[first year]:year'
  '--last-year[last year]:year'
  '--aws-profile[aws profile]:profile'
  '--aws-region[aws region]:region'
  '--s3-endpoint[s3 endpoint]:url'
  )

  local -a output
  output=(
  '(-a --attrs)'{-a,--attrs}'[columns to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml csv raw)'
  '--schema[dump schema]'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'cpictl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    get)
      _arguments -C \
        $source \
        $output \
        '(-q --quiet)'{-q,--quiet}'[no progress on stderr]' \
        '(-n --country)'{-n,--country}'[country name]:country'
      ;;
    sanitize|resolve|verify)
      _arguments -C \
        $source \
        '(-n --country)'{-n,--country}'[country name]:country'
      ;;
    warm)
      _arguments -C \
        $source \
        '*'{-n,--country}'[country name]:country' \
        '(-l --limit)'{-l,--limit}'[concurrent writes]:limit'
      ;;
    purge)
      _arguments -C \
        '(-d --data-dir)'{-d,--data-dir}'[data directory]:dir:_directories' \
        '--older-than[age in hours]:hours'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $source
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _cpictl cpictl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := Writer(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: cpictl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "cpictl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
