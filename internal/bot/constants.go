package bot

// Message size constants.
const (
	// MaxMessageSize is the maximum size for a single Telegram message part.
	MaxMessageSize = 4000
	// EntityTypeBotCommand marks the command entity at the start of a message.
	EntityTypeBotCommand = "bot_command"
)

// Command names. The *Alt names are the historical spellings kept as aliases.
const (
	CmdStart           = "start"
	CmdHelp            = "help"
	CmdSetStorage      = "set_storage"
	CmdSetStorageAlt   = "set_db"
	CmdSetChannel      = "set_channel"
	CmdListCatalog     = "list_catalog"
	CmdListCatalogAlt  = "index"
	CmdShowProgress    = "show_progress"
	CmdShowProgressAlt = "index_progress"
	CmdBinding         = "binding"
	CmdCancel          = "cancel"

	cmdUnknown = "unknown"
	cmdVideo   = "video"
)

// Log field names.
const (
	LogFieldUserID   = "user_id"
	LogFieldUsername = "username"
	LogFieldCommand  = "command"
	logFieldTarget   = "target"
)

// Reply texts.
const (
	msgUserNotIdentified   = "User not identified. Only user messages are allowed."
	msgNotConfigured       = "Please configure storage first using /set_storage and /set_channel."
	msgSetStorageFirst     = "Please set your storage configuration first using /set_storage."
	msgSetStorageUsage     = "Usage: /set_storage <endpoint> <database> <collection>"
	msgSetChannelUsage     = "Usage: /set_channel <channel_id>"
	msgStorageSaved        = "Storage configuration saved!"
	msgChannelSaved        = "Channel ID saved!"
	msgSendVideo           = "Please send a video file."
	msgNoVideos            = "No videos indexed yet."
	msgNothingToIndex      = "No videos to index."
	msgIndexingComplete    = "Indexing complete"
	msgProgressCancelled   = "Progress reporting cancelled"
	msgNothingToCancel     = "No progress report is running."
	msgUnknownCommand      = "Unknown command. Use /help to see the available commands."
	msgStorageFailure      = "Could not reach your storage. Check /binding and try again."
	msgUnsupportedEndpoint = "Unsupported storage endpoint. Use a mongodb://, postgres:// or memory:// URI with /set_storage."
	msgInternalError       = "Something went wrong, please try again."
	msgIndexedFmt          = "Video indexed with ID: %s"
	msgDuplicateFmt        = "Duplicate file skipped: %s"
	msgCatalogHeader       = "Indexed Videos:"
	msgCompleteCappedFmt   = "Indexing complete (%d of %d items reported)"
)

// Placeholders for absent values.
const (
	unnamedVideo = "Unnamed Video"
	notAvailable = "N/A"
)
