package bot

// helpMessage returns the welcome text sent for /start and /help.
func helpMessage() string {
	return "Welcome! Use the following commands to configure:\n" +
		"/set_storage <endpoint> <database> <collection> - Bind your document store " +
		"(mongodb://, postgres:// or memory:// endpoint)\n" +
		"/set_channel <channel_id> - Tag new videos with a channel\n" +
		"/list_catalog - Retrieve all indexed videos\n" +
		"/show_progress - Show indexing progress\n" +
		"/binding - Show your current configuration\n" +
		"/cancel - Stop a running progress report\n" +
		"Send any video file to index it."
}
