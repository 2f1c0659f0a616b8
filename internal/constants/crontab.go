package constants

// Crontab block and binary constants.

// SentinelMarker is the text shared by both block sentinels.
// Plan names must not contain it.
const SentinelMarker = "Plan generated jobs for:"

// BeginSentinelFormat is the printf format of the comment opening a plan block.
const BeginSentinelFormat = "# Begin " + SentinelMarker + " %s"

// EndSentinelFormat is the printf format of the comment closing a plan block.
const EndSentinelFormat = "# End " + SentinelMarker + " %s"

// CrontabBinary is the default crontab(1) executable.
const CrontabBinary = "crontab"

// CrontabNoCrontabMarker is the stderr fragment crontab -l prints for users
// without an installed crontab.
const CrontabNoCrontabMarker = "no crontab for"

// CrontabTempPattern is the os.CreateTemp pattern for the file handed to crontab.
const CrontabTempPattern = "cronplan-*.cron"
