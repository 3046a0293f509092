package main

// Message constants
const (
	MsgRootShort = "A declarative git and symlink-farm orchestrator"
	MsgRootLong  = `gitfarm applies repeatable operations - cloning, pulling, committing and
pushing repositories, and materializing symlinks - across named categories of
repositories described in one YAML document.

Declare your repositories and links once, group them into categories, and run
the same operation over all of them. One repository failing never stops the
rest of the run; gitfarm attempts every item and reports a summary at the end.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default is $XDG_CONFIG_HOME/gitfarm/config.yaml)"
	MsgFlagQuiet   = "Suppress per-item progress output (failure summaries still print)"
	MsgFlagNoEmoji = "Use plain text status markers instead of emoji"
	MsgFlagDryRun  = "Preview what would run without executing anything"
	MsgFlagRepos   = "Limit the run to repos with these names"

	MsgCloneShort = "Clone the selected repositories"
	MsgCloneLong  = `Clones every selected repository from its configured url into its configured
path. Repos without a url or path are skipped, as are repos whose flags do
not include clone.`

	MsgPullShort = "Pull the selected repositories"
	MsgAddShort  = "Stage all changes in the selected repositories"
	MsgPushShort = "Push the selected repositories"

	MsgCommitShort = "Commit the selected repositories"
	MsgCommitLong  = `Commits staged changes in every selected repository.

The commit message comes from one of three strategies: --quick uses the fixed
default message, --fast derives one from the category name and timestamp, and
--edit opens your editor per repository. With none of these, category flags
pick the strategy and the editor is the fallback. Cancelling an edit skips
that repository only.`
	MsgCommitExample = `  # Commit everything, message prompted per repo
  gitfarm commit

  # Commit the dev category with an explicit message
  gitfarm commit dev -m "update configs"

  # Commit with the default message, no prompts
  gitfarm commit --quick`

	MsgQuickShort = "Pull, stage, commit and push in one sweep"
	MsgQuickLong  = `Runs pull, add, commit and push on every selected repository, in that order.
Each step is attempted for each repo even when an earlier step failed. The
commit uses the default message unless -m overrides it.`

	MsgLinkShort   = "Create the selected symlinks"
	MsgLinkLong    = `Materializes the link definitions of the selected categories. When no
category is named, the global link set is included. A link that already
points at the right file is reported as skipped, never as a failure.`
	MsgUnlinkShort = "Remove the selected symlinks"
	MsgUnlinkLong  = `Removes the symlinks declared by the selected categories (plus the global
ones when no category is named). Only symlinks pointing at the declared
source are removed; anything else is left alone and reported.`

	MsgListShort = "List categories, repositories and links"

	MsgVersionShort = "Print version information"
)
