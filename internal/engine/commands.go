package engine

// Command names understood by the engine.
const (
	CmdInfo             = "info"
	CmdEncryptionStatus = "encryptionstatus"
	CmdBalance          = "balance"
	CmdNotes            = "notes"
	CmdList             = "list"
	CmdSyncStatus       = "syncstatus"
	CmdSync             = "sync"
	CmdRescan           = "rescan"
	CmdSendProgress     = "sendprogress"
	CmdSend             = "send"
	CmdLastTxID         = "lasttxid"
	CmdHeight           = "height"
	CmdSave             = "save"
	CmdEncrypt          = "encrypt"
	CmdDecrypt          = "decrypt"
	CmdLock             = "lock"
	CmdUnlock           = "unlock"
	CmdExport           = "export"
	CmdNew              = "new"
	CmdSeed             = "seed"
	CmdGetOption        = "getoption"
	CmdSetOption        = "setoption"
	CmdZecPrice         = "zecprice"
	CmdDefaultFee       = "defaultfee"
	CmdImport           = "import"
)

// ResultOK is the acknowledgement returned by asynchronous commands and by
// the lifecycle calls.
const ResultOK = "OK"

// errorFieldExempt lists commands whose JSON "error" field is payload rather
// than an engine failure.
var errorFieldExempt = map[string]bool{
	CmdSendProgress: true,
}
