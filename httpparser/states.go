package httpparser

type fieldState uint8

const (
	fieldName fieldState = iota + 1
	fieldValueLS
	fieldValue
	fieldLF
	fieldValid
)

type requestLineState uint8

const (
	reqMethod requestLineState = iota + 1
	reqURILS
	reqURI
	reqVersionLS
	reqVersion
	reqMajor
	reqDot
	reqMinor
	reqCR
	reqLF
	reqValid
)

type statusLineState uint8

const (
	statVersion statusLineState = iota + 1
	statMajor
	statDot
	statMinor
	statCodeLS
	statCode
	statReasonLS
	statReason
	statLF
	statValid
)

type chunkState uint8

const (
	chunkSize chunkState = iota + 1
	chunkExtension
	chunkSizeLF
	chunkData
	chunkDataCR
	chunkDataLF
	chunkTrailers
	chunkDone
	chunkLast
)

type rxState uint8

const (
	rxStart rxState = iota + 1
	rxHeader
	rxBody
	rxChunk
	rxEnd
	rxDead
)
